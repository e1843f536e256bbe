// запускаем указанные виды из поддерживаемых серверов
package servers

import (
	"strings"

	"github.com/pkg/errors"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/servers/httpserver"
)

var ErrUnknownMode = errors.New("no supported server in mode")

type servers struct {
	mode       string
	httpserver httpserver.Server
}

type Servers interface {
	Run() error
}

// Run запускаем указанные сервера
func (s *servers) Run() error {
	if strings.Contains(s.mode, "http") {
		return s.httpserver.Run()
	}

	return errors.Wrap(ErrUnknownMode, s.mode)
}

func New(
	mode string,
	httpserver httpserver.Server,
) Servers {
	return &servers{
		mode,
		httpserver,
	}
}
