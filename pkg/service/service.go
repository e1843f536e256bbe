package service

import (
	"context"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/publish"
)

// Publisher загрузка собранного архива во внешнее хранилище
type Publisher interface {
	Publish(ctx context.Context, archivePath string) (publish.Object, error)
}

type service struct {
	cfg       model.Config
	sink      cartridge.Sink
	publisher Publisher
	opts      []cartridge.Option
}

// Service interface
type Service interface {
	Alive(ctx context.Context) (out model.AliveOut, err error)
	Ping(ctx context.Context) (result []model.Pong, err error)
	Build(ctx context.Context, in model.BuildIn) (out model.BuildOut, err error)
}

// New publisher может быть nil, тогда публикация недоступна
func New(
	cfg model.Config,
	sink cartridge.Sink,
	publisher Publisher,
) (Service, error) {
	opts, err := cartridge.ConfigOptions(cfg)
	if err != nil {
		return nil, err
	}

	return &service{
		cfg:       cfg,
		sink:      sink,
		publisher: publisher,
		opts:      opts,
	}, nil
}
