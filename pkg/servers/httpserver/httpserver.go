package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/gommon/color"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/logger"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/service"
)

const shutdownTimeout = 10 * time.Second

type httpserver struct {
	ctx context.Context
	cfg model.Config
	src service.Service

	serviceVersion string
	hashCommit     string
}

type Server interface {
	Run() (err error)
}

// Run запуск сервера. Останавливается при отмене контекста с ожиданием текущих запросов.
func (h *httpserver) Run() error {
	done := color.Green("[OK]")
	fail := color.Red("[NO]")

	srv := &http.Server{
		Addr:         ":" + h.cfg.PortApp,
		Handler:      h.NewRouter(),
		ReadTimeout:  h.cfg.ReadTimeout.Value,
		WriteTimeout: h.cfg.WriteTimeout.Value,
	}

	idle := make(chan struct{})
	go func() {
		defer close(idle)
		<-h.ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error(h.ctx, "http server shutdown", zap.Error(err))
		}
	}()

	fmt.Printf("%s Service run (port:%s)\n", done, h.cfg.PortApp)
	logger.Info(h.ctx, "Запуск http сервера",
		zap.String("port", h.cfg.PortApp),
		zap.String("version", h.serviceVersion),
		zap.String("commit", h.hashCommit))

	e := srv.ListenAndServe()
	if e != nil && !errors.Is(e, http.ErrServerClosed) {
		fmt.Printf("%s Error run (port:%s) err: %s\n", fail, h.cfg.PortApp, e)
		return errors.Wrap(e, "SERVER run")
	}
	<-idle

	return nil
}

func New(
	ctx context.Context,
	cfg model.Config,
	src service.Service,
	serviceVersion string,
	hashCommit string,
) Server {
	return &httpserver{
		ctx,
		cfg,
		src,
		serviceVersion,
		hashCommit,
	}
}
