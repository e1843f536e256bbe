package cartridge

import (
	"context"

	"github.com/urfave/cli"
)

const (
	ActionBuild   = "build"
	ActionInspect = "inspect"
	ActionServe   = "serve"
)

// CLIParams параметры, полученные из консоли
type CLIParams struct {
	Action        string
	Config        string
	Course        string
	Out           string
	Pack          bool
	Strategy      string
	NoAssessments bool
	GeneratedOnly bool
	Publish       bool
	Archive       string
	Port          string
}

// RunServiceFuncCLI обрабатываем параметры с консоли и вызываем переданную функцию
func RunServiceFuncCLI(ctx context.Context, args []string, funcCLI func(ctx context.Context, p CLIParams) error) error {
	configFlag := cli.StringFlag{
		Name:  "config, c",
		Usage: "Файл конфигурации (toml) или конфигурация в base64",
		Value: "",
	}

	appCLI := cli.NewApp()
	appCLI.Name = "cartridge"
	appCLI.Usage = "IMS Common Cartridge builder"
	appCLI.Commands = []cli.Command{
		{
			Name: ActionBuild, ShortName: "b",
			Usage: "Build cartridge from course file (json/yaml/toml)",
			Flags: []cli.Flag{
				configFlag,
				cli.StringFlag{
					Name:  "course, f",
					Usage: "Файл описания курса",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "Путь к imsmanifest.xml (дескрипторы пишутся рядом)",
					Value: "cartridge/imsmanifest.xml",
				},
				cli.BoolFlag{
					Name:  "package, p",
					Usage: "Упаковать результат в .imscc",
				},
				cli.StringFlag{
					Name:  "ids",
					Usage: "Стратегия идентификаторов: counter или random (по-умолчанию из конфигурации)",
				},
				cli.BoolFlag{
					Name:  "no-assessments",
					Usage: "Не выделять проверочные ресурсы",
				},
				cli.BoolFlag{
					Name:  "generated-only",
					Usage: "Упаковать только файлы текущей генерации",
				},
				cli.BoolFlag{
					Name:  "publish",
					Usage: "Загрузить архив в s3 (требует --package)",
				},
			},
			Action: func(c *cli.Context) error {
				return funcCLI(ctx, CLIParams{
					Action:        ActionBuild,
					Config:        c.String("config"),
					Course:        c.String("course"),
					Out:           c.String("out"),
					Pack:          c.Bool("package"),
					Strategy:      c.String("ids"),
					NoAssessments: c.Bool("no-assessments"),
					GeneratedOnly: c.Bool("generated-only"),
					Publish:       c.Bool("publish"),
				})
			},
		},
		{
			Name: ActionInspect, ShortName: "i",
			Usage: "Inspect and validate .imscc archive",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "archive, a",
					Usage: "Путь к архиву .imscc",
				},
			},
			Action: func(c *cli.Context) error {
				archive := c.String("archive")
				if archive == "" {
					archive = c.Args().First()
				}
				return funcCLI(ctx, CLIParams{
					Action:  ActionInspect,
					Archive: archive,
				})
			},
		},
		{
			Name: ActionServe, ShortName: "s",
			Usage: "Start http service",
			Flags: []cli.Flag{
				configFlag,
				cli.StringFlag{
					Name:  "port, p",
					Usage: "Порт, на котором запустить процесс (по-умолчанию из конфигурации)",
				},
			},
			Action: func(c *cli.Context) error {
				return funcCLI(ctx, CLIParams{
					Action: ActionServe,
					Config: c.String("config"),
					Port:   c.String("port"),
				})
			},
		},
	}

	return appCLI.Run(args)
}
