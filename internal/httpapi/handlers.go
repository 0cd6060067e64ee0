package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"horse.fit/subplot/internal/language"
	"horse.fit/subplot/internal/translation"
)

type translateRequest struct {
	Text       string   `json:"text"`
	TargetLang string   `json:"target_lang,omitempty"`
	Names      []string `json:"names,omitempty"`
}

type translateResponse struct {
	Result     *translation.Result `json:"result"`
	TargetLang string              `json:"target_lang"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]string{"status": "ok"})
}

func (s *Server) handleLanguages(c echo.Context) error {
	return success(c, map[string]any{
		"languages": language.Options(),
		"default":   s.targetLang,
	})
}

func (s *Server) handleTranslate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body", nil)
	}

	if strings.TrimSpace(req.Text) == "" {
		return fail(c, http.StatusBadRequest, "Validation failed", map[string]any{
			"validation_errors": map[string]string{"text": "must not be empty"},
		})
	}

	targetLang := language.NormalizeTag(req.TargetLang)
	if targetLang == "" {
		targetLang = s.targetLang
	}

	result, err := s.chain.Translate(c.Request().Context(), translation.Request{
		Text:           req.Text,
		TargetLang:     targetLang,
		ProtectedNames: req.Names,
		Field:          "api",
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("api translation failed")
		return internalError(c, err.Error())
	}

	return success(c, translateResponse{Result: result, TargetLang: targetLang})
}

func (s *Server) handleSelfTest(c echo.Context) error {
	if s.selfTester == nil {
		return fail(c, http.StatusNotFound, "Self-test is not configured", nil)
	}
	return success(c, map[string]any{
		"results": s.selfTester(c.Request().Context()),
	})
}
