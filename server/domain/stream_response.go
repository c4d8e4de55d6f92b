package domain

type StreamResponse struct {
	Event   StreamEventType
	Payload any
	Error   error
}

func NewStreamResponse(event StreamEventType, payload any) StreamResponse {
	return StreamResponse{
		Event:   event,
		Payload: payload,
	}
}

func NewStreamError(err error) StreamResponse {
	return StreamResponse{
		Event:   EventError,
		Payload: ErrorPayload{Message: err.Error()},
		Error:   err,
	}
}

func (r StreamResponse) IsError() bool {
	return r.Error != nil
}

func (r StreamResponse) String() string {
	if r.IsError() {
		return "error: " + r.Error.Error()
	}
	return r.Event.String()
}
