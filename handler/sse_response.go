package handler

import (
	"net/http"
)

// SSEHandler runs for the lifetime of one SSE connection. The connection
// is closed when it returns or the client disconnects.
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "errors.sse_requires_datastar")
	}

	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}

	return s.handler(&streamContext{Context: base, sse: sse})
}

// SSE creates a streaming response.
//
//	return handler.SSE(func(stream handler.StreamContext) error {
//		ticker := time.NewTicker(16 * time.Millisecond)
//		defer ticker.Stop()
//		for {
//			select {
//			case <-stream.Done():
//				return nil
//			case <-ticker.C:
//				if err := stream.SendSignal("stat_clients", next()); err != nil {
//					return err
//				}
//			}
//		}
//	})
func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}
