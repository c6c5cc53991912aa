package logging

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})

	require.NoError(t, Setup("debug", false))
	require.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	_, ok := logrus.StandardLogger().Formatter.(*logrus.TextFormatter)
	require.True(t, ok)

	require.NoError(t, Setup("warn", true))
	require.Equal(t, logrus.WarnLevel, logrus.GetLevel())
	_, ok = logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
	require.True(t, ok)

	require.Error(t, Setup("loud", false))
}

func TestRequestLogger(t *testing.T) {
	hook := test.NewGlobal()
	t.Cleanup(hook.Reset)

	e := echo.New()
	e.Use(RequestLogger())
	e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/missing", func(c echo.Context) error { return c.NoContent(http.StatusNotFound) })
	e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })

	for _, tc := range []struct {
		path  string
		level logrus.Level
	}{
		{"/ok", logrus.InfoLevel},
		{"/missing", logrus.WarnLevel},
		{"/boom", logrus.ErrorLevel},
	} {
		hook.Reset()
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.Header.Set(echo.HeaderXRequestID, "rid-1")
		e.ServeHTTP(httptest.NewRecorder(), req)

		entry := hook.LastEntry()
		require.NotNil(t, entry, tc.path)
		require.Equal(t, tc.level, entry.Level, tc.path)
		require.Equal(t, tc.path, entry.Data["uri"])
		require.Equal(t, "rid-1", entry.Data["request_id"])
	}
}

func TestFromContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc")
	c := e.NewContext(req, httptest.NewRecorder())
	require.Equal(t, "abc", FromContext(c).Data["request_id"])

	c.Response().Header().Set(echo.HeaderXRequestID, "from-response")
	require.Equal(t, "from-response", FromContext(c).Data["request_id"])
}
