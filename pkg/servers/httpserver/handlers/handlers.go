package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/logger"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/service"
)

type handlers struct {
	service service.Service
	cfg     model.Config
}

type Handlers interface {
	Alive(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
	Build(w http.ResponseWriter, r *http.Request)
}

func (h *handlers) transportResponse(w http.ResponseWriter, response interface{}) (err error) {
	d, err := json.Marshal(response)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(d)

	return err
}

func (h *handlers) transportError(ctx context.Context, w http.ResponseWriter, code int, error error, message string) (err error) {
	var res = model.Response{}

	res.Status.Status = code
	res.Status.Code = http.StatusText(code)
	res.Status.Description = message
	if error != nil {
		res.Status.Error = error.Error()
	}
	d, err := json.Marshal(res)

	logger.Error(ctx, message, zap.Int("code", code), zap.Error(error))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(d)

	return err
}

func (h *handlers) transportByte(w http.ResponseWriter, mimeType, fileName string, response []byte) (err error) {
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", fmt.Sprint(len(response)))
	if fileName != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	}
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(response)

	return err
}

func New(
	service service.Service,
	cfg model.Config,
) Handlers {
	return &handlers{
		service,
		cfg,
	}
}
