package applications

import (
	"fmt"

	"workbridge/internal/domain"
)

// Notification copy lives here as pure functions so the wording is testable
// without a store or an HTTP stack.

// StatusChangeMessage maps an employer-side update to the message the worker
// should see. An empty result means no notification is due.
func StatusChangeMessage(jobTitle string, status, employerNotes, requestedDocuments *string) string {
	if status != nil {
		switch *status {
		case domain.StatusAccepted:
			msg := fmt.Sprintf("Your application for \"%s\" has been accepted", jobTitle)
			if requestedDocuments != nil && *requestedDocuments != "" {
				msg += ". Please provide the following documents: " + *requestedDocuments
			}
			return msg
		case domain.StatusRejected:
			return fmt.Sprintf("Your application for \"%s\" has been rejected", jobTitle)
		}
	}
	if employerNotes != nil && *employerNotes != "" {
		return fmt.Sprintf("The employer has added notes to your application for \"%s\"", jobTitle)
	}
	return ""
}

// DetailsUpdateMessage is the employer-facing message for a worker-side edit.
func DetailsUpdateMessage(jobTitle string, withDetails bool) string {
	msg := fmt.Sprintf("A worker has updated their application for \"%s\"", jobTitle)
	if withDetails {
		msg += " with additional details"
	}
	return msg
}

// Submission fan-out, one message per side.
func SubmittedEmployerMessage(jobTitle string) string {
	return "New application received for job: " + jobTitle
}

func SubmittedWorkerMessage(jobTitle string) string {
	return "You have applied for the job: " + jobTitle
}
