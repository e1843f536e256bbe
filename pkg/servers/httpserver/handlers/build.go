package handlers

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/ident"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/logger"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/publish"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/service"
)

var errBadRequest = errors.New("bad request")

// Build сборка пакета из описания курса в теле запроса.
// Параметры запроса: ids (counter|random), assessments (true|false), publish (true|false).
// При Accept: application/json отдается описание результата, иначе - сам архив .imscc.
func (h *handlers) Build(w http.ResponseWriter, r *http.Request) {
	var err error
	defer func() {
		if err != nil {
			logger.Error(r.Context(), "[Build] Error response execution",
				zap.String("url", r.RequestURI),
				zap.Error(err))
		}
	}()

	in, err := buildDecodeRequest(r.Context(), r)
	if err != nil {
		code := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			code = http.StatusRequestEntityTooLarge
		}
		err = h.transportError(r.Context(), w, code, err, "[Build] error exec buildDecodeRequest")
		return
	}
	ctx := logger.SetFieldCtx(r.Context(), logger.CourseKey, in.Course.Title)

	serviceResult, err := h.service.Build(ctx, in)
	if err != nil {
		err = h.transportError(ctx, w, buildErrorCode(err), err, "[Build] error exec service.Build")
		return
	}

	if wantJSON(r) {
		err = h.transportResponse(w, model.Response{
			Data:   serviceResult,
			Status: model.RestStatus{Status: http.StatusOK},
		})
		return
	}

	err = h.transportByte(w, publish.ContentType, serviceResult.FileName, serviceResult.Archive)
}

func buildDecodeRequest(ctx context.Context, r *http.Request) (in model.BuildIn, err error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return in, errors.Wrap(err, "unable read body")
	}
	if len(data) == 0 {
		return in, errors.Wrap(errBadRequest, "empty body")
	}

	in.Course, err = model.DecodeCourse(data, bodyFormat(r.Header.Get("Content-Type")))
	if err != nil {
		return in, err
	}

	query := r.URL.Query()
	in.Strategy = query.Get("ids")
	if v := query.Get("assessments"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return in, errors.Wrapf(errBadRequest, "assessments=%s", v)
		}
		in.Assessments = &enabled
	}
	if v := query.Get("publish"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return in, errors.Wrapf(errBadRequest, "publish=%s", v)
		}
		in.Publish = &enabled
	}

	return in, nil
}

func bodyFormat(contentType string) string {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch {
	case strings.Contains(mediaType, "yaml"):
		return model.FormatYAML
	case strings.Contains(mediaType, "toml"):
		return model.FormatTOML
	default:
		return model.FormatJSON
	}
}

func wantJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func buildErrorCode(err error) int {
	var se *cartridge.StructuralError
	switch {
	case errors.As(err, &se):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ident.ErrUnknownStrategy):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPublishDisabled):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
