package ui

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const hostEnv = "CONSOLE_HOST"

// entrypoint for test, runs against a deployed console only
func TestApiSuite(t *testing.T) {
	if os.Getenv(hostEnv) == "" {
		t.Skipf("%s not set", hostEnv)
	}
	suite.Run(t, new(apiSuite))
}

type apiSuite struct {
	suite.Suite

	httpClient *http.Client
	host       string
}

func (a *apiSuite) SetupSuite() {
	a.httpClient = &http.Client{
		Timeout: 2 * time.Minute,
	}

	a.host = os.Getenv(hostEnv)
}

func (a *apiSuite) Test_BasicHealthCheck() {
	url := fmt.Sprintf("http://%s/health", a.host)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(a.T(), err)

	r, err := a.httpClient.Do(req)
	require.NoError(a.T(), err)
	defer r.Body.Close()

	a.Require().Equal(http.StatusOK, r.StatusCode)
}
