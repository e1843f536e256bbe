package service

import (
	"context"
	"os"
	"strconv"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
)

// Ping ...
func (s *service) Ping(ctx context.Context) (result []model.Pong, err error) {
	pg, _ := strconv.Atoi(s.cfg.PortApp)
	pid := strconv.Itoa(os.Getpid()) + ":" + s.cfg.HashRun

	result = []model.Pong{
		{
			Name:    s.cfg.Name,
			Version: s.cfg.ServiceVersion,
			Status:  "run",
			Port:    pg,
			Pid:     pid,
			Run:     s.cfg.HashRun,
		},
	}

	return result, err
}
