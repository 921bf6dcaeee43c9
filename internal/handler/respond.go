package handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/dishpatch/order-api/internal/domain/fault"
)

// writeJSON encodes a response body with enc and writes it with the given
// status code.
func writeJSON(w http.ResponseWriter, status int, enc func(e *jx.Encoder)) {
	e := &jx.Encoder{}
	enc(e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError translates err into the client-facing error payload. Domain
// faults map to 404/400 and are logged at warn; anything else is a 500
// logged at error without leaking internals.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	lg := zctx.From(r.Context())

	if fe, ok := fault.From(err); ok {
		switch fe.Kind {
		case fault.KindNotFound:
			lg.Warn("Client error", zap.String("path", r.URL.Path), zap.Error(err))
			writeFail(w, http.StatusNotFound, fe.Error(), nil)
			return
		case fault.KindValidation:
			lg.Warn("Client error", zap.String("path", r.URL.Path), zap.Error(err))
			writeFail(w, http.StatusBadRequest, fe.Message, fe.Fields)
			return
		}
	}

	lg.Error("Server error", zap.String("path", r.URL.Path), zap.Error(err))
	e := &jx.Encoder{}
	e.ObjStart()
	e.FieldStart("status")
	e.Str("error")
	e.FieldStart("message")
	e.Str("Internal Server Error")
	e.ObjEnd()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(e.Bytes())
}

// writeFail writes a 4xx payload: {"status":"fail","message":...,"errors":[...]}.
func writeFail(w http.ResponseWriter, status int, message string, fields []fault.FieldError) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("status")
		e.Str("fail")
		e.FieldStart("message")
		e.Str(message)
		if len(fields) > 0 {
			e.FieldStart("errors")
			e.ArrStart()
			for _, f := range fields {
				e.ObjStart()
				e.FieldStart("field")
				e.Str(f.Field)
				e.FieldStart("message")
				e.Str(f.Message)
				e.ObjEnd()
			}
			e.ArrEnd()
		}
		e.ObjEnd()
	})
}
