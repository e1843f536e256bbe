package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/logger"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
)

// Alive текущая конфигурация сервиса (секреты скрыты)
func (h *handlers) Alive(w http.ResponseWriter, r *http.Request) {
	var err error
	defer func() {
		if err != nil {
			logger.Error(r.Context(), "[Alive] Error response execution",
				zap.String("url", r.RequestURI),
				zap.Error(err))
		}
	}()

	serviceResult, err := h.service.Alive(r.Context())
	if err != nil {
		err = h.transportError(r.Context(), w, http.StatusInternalServerError, err, "[Alive] error exec service.Alive")
		return
	}

	response, err := aliveEncodeResponse(r.Context(), serviceResult)
	if err != nil {
		err = h.transportError(r.Context(), w, http.StatusInternalServerError, err, "[Alive] error exec aliveEncodeResponse")
		return
	}

	err = h.transportResponse(w, response)
}

func aliveEncodeResponse(ctx context.Context, serviceResult model.AliveOut) (response model.Response, err error) {
	response.Data = serviceResult
	response.Status.Status = http.StatusOK

	return response, err
}
