package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/labstack/gommon/color"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/ident"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/logger"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/manifest"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/publish"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/servers"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/servers/httpserver"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/service"
)

var (
	serviceVersion string
	hashCommit     string

	done = color.Green("[OK]")
	fail = color.Red("[Fail]")
)

func main() {
	err := cartridge.RunServiceFuncCLI(context.Background(), os.Args, Start)
	if err != nil {
		fmt.Printf("%s %s (os.exit 1)\n", fail, err)
		os.Exit(1)
	}
}

// Start выполняем команду, переданную в консоли
func Start(ctx context.Context, p cartridge.CLIParams) error {
	switch p.Action {
	case cartridge.ActionInspect:
		return inspect(ctx, p)
	case cartridge.ActionServe:
		return serve(ctx, p)
	default:
		return build(ctx, p)
	}
}

func setup(p cartridge.CLIParams, development bool) (cfg model.Config, err error) {
	if _, err = cartridge.ConfigLoad(p.Config, &cfg); err != nil {
		return cfg, errors.Wrap(err, "Error. Load config is failed.")
	}

	cfg.ServiceVersion = serviceVersion
	cfg.HashCommit = hashCommit
	cfg.ConfigName = p.Config
	cfg.HashRun = cartridge.UUID()

	options := []logger.ConfigOption{
		logger.WithCustomField(string(logger.ServiceIDKey), cfg.HashRun),
		logger.WithCustomField(string(logger.ServiceTypeKey), p.Action),
		logger.WithLevel(cfg.LogsLevel),
		logger.WithOutputPaths(strings.Split(cfg.LogsOutput, ",")...),
	}
	if development {
		options = append(options, logger.WithDevelopment())
	}
	logger.SetupDefaultLogger(cfg.Name+"/"+p.Action, options...)

	return cfg, nil
}

func build(ctx context.Context, p cartridge.CLIParams) error {
	cfg, err := setup(p, true)
	if err != nil {
		return err
	}
	if p.Course == "" {
		return errors.New("course file is required (--course)")
	}

	opts, err := cartridge.ConfigOptions(cfg)
	if err != nil {
		return err
	}
	if p.Strategy != "" {
		strategy, err := ident.ParseStrategy(p.Strategy)
		if err != nil {
			return err
		}
		opts = append(opts, cartridge.WithStrategy(strategy))
	}
	if p.NoAssessments {
		opts = append(opts, cartridge.WithAssessments(false))
	}
	if p.GeneratedOnly {
		opts = append(opts, cartridge.WithGeneratedOnly(true))
	}

	course, err := model.LoadCourse(p.Course)
	if err != nil {
		return err
	}

	publishing := p.Publish || cfg.Publish.Value
	pack := p.Pack || publishing
	if pack {
		if err = cartridge.CheckArchiveTarget(p.Out); err != nil {
			return err
		}
	}
	res, err := cartridge.New(cartridge.NewFileSink(), opts...).Generate(ctx, course, p.Out, pack)
	if err != nil {
		return err
	}
	fmt.Printf("%s Manifest: %s (resources: %d)\n", done, p.Out, res.Resources)
	if res.ArchivePath != "" {
		fmt.Printf("%s Archive: %s\n", done, res.ArchivePath)
	}

	if publishing {
		pub, err := publish.New(publish.ConfigFrom(cfg))
		if err != nil {
			return err
		}
		obj, err := pub.Publish(ctx, res.ArchivePath)
		if err != nil {
			return err
		}
		fmt.Printf("%s Published: %s/%s %s\n", done, obj.Bucket, obj.Key, obj.URL)
	}

	return nil
}

func inspect(ctx context.Context, p cartridge.CLIParams) error {
	if p.Archive == "" {
		return errors.New("archive is required (--archive)")
	}

	doc, files, err := manifest.ReadArchive(p.Archive)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s (%s)\n", done, doc.Metadata.Title, doc.Identifier)
	doc.Walk(func(it manifest.Item, depth int) {
		ref := ""
		if it.Identifierref != "" {
			ref = " -> " + it.Identifierref
		}
		fmt.Printf("%s%s%s\n", strings.Repeat("  ", depth), it.Title, ref)
	})
	fmt.Printf("resources: %d, files: %d\n", len(doc.Resources), len(files))

	err = multierr.Combine(doc.Validate(), doc.ValidateFiles(files))
	if err != nil {
		return errors.Wrap(err, "archive is not valid")
	}
	fmt.Printf("%s Archive is valid\n", done)

	return nil
}

func serve(ctxm context.Context, p cartridge.CLIParams) (err error) {
	cfg, err := setup(p, false)
	if err != nil {
		return err
	}
	if p.Port != "" {
		cfg.PortApp = p.Port
	}

	ctx, cancel := context.WithCancel(ctxm)
	defer cancel()
	ctx = logger.SetFieldCtx(ctx, logger.RunKey, cfg.HashRun)

	defer cartridge.Recover(ctx)

	prometheus.MustRegister(cartridge.NewBuildInfo("cartridge"))
	cartridge.SetBuildInfo(cfg.ServiceVersion, cfg.HashCommit)

	var publisher service.Publisher
	if cfg.Publish.Value {
		pub, err := publish.New(publish.ConfigFrom(cfg))
		if err != nil {
			return err
		}
		publisher = pub
	}

	src, err := service.New(cfg, cartridge.NewFileSink(), publisher)
	if err != nil {
		return err
	}

	logger.Info(ctx, "Запускаем cartridge-сервис", zap.String("port", cfg.PortApp))

	// для завершения сервиса ждем сигнал в процесс
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
	go ListenForShutdown(ch, cancel)

	srv := servers.New(
		"http",
		httpserver.New(ctx, cfg, src, serviceVersion, hashCommit),
	)

	return srv.Run()
}

func ListenForShutdown(ch <-chan os.Signal, cancelFunc context.CancelFunc) {
	var done = color.Grey("[OK]")

	<-ch
	cancelFunc()
	logger.Info(context.Background(), "Service is stopped.")

	fmt.Printf("%s Service is stopped.\n", done)
}
