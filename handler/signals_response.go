package handler

import (
	"encoding/json"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

type signalsResponse struct {
	signals map[string]any
}

func (s signalsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	data, err := json.Marshal(s.signals)
	if err != nil {
		return err
	}

	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchSignals(data)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, err = w.Write(data)
	return err
}

// Signals patches DataStar signals. Regular requests receive the same
// values as a JSON object.
//
//	return handler.Signals(map[string]any{"telefone": "(11) 91234-5678"})
func Signals(signals map[string]any) Response {
	return signalsResponse{signals: signals}
}
