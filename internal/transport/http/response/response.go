package response

// Err is the wire shape of every error response. Status lives on the HTTP
// layer, the body only carries a human-readable message.
type Err struct {
	Message string `json:"message"`
}

func Error(msg string) Err { return Err{Message: msg} }

// Msg is for endpoints whose success body is just an acknowledgement.
type Msg struct {
	Message string `json:"message"`
}

func OK(msg string) Msg { return Msg{Message: msg} }
