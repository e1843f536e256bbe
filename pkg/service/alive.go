package service

import (
	"context"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
)

// Alive текущая конфигурация без секретов
func (s *service) Alive(ctx context.Context) (out model.AliveOut, err error) {
	cfg := s.cfg
	cfg.VfsAccessKeyID = cartridge.MaskSecret(cfg.VfsAccessKeyID, 2, 2)
	cfg.VfsSecretKey = cartridge.MaskSecret(cfg.VfsSecretKey, 0, 0)
	cfg.VfsCertCA = cartridge.MaskSecret(cfg.VfsCertCA, 0, 0)

	out.Config = cfg
	out.Strategy = cartridge.FirstVal(cfg.IdsStrategy, "counter")
	out.Version = cfg.ServiceVersion

	return
}
