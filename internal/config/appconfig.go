package config

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	log "github.com/sirupsen/logrus"

	"github.com/syrilster/ems-console/internal/charts"
	"github.com/syrilster/ems-console/internal/customhttp"
	"github.com/syrilster/ems-console/internal/ems"
	"github.com/syrilster/ems-console/internal/loader"
	"github.com/syrilster/ems-console/internal/report"
	emssession "github.com/syrilster/ems-console/internal/session"
)

const sessionFileName = "ems_session.json"

type ApplicationConfig struct {
	envValues *envConfig
	emsClient ems.ClientInterface
	store     emssession.Store
	status    *loader.Status
	registry  *charts.Registry
	mailer    *report.Mailer
}

//Version returns application version
func (cfg *ApplicationConfig) Version() string {
	return cfg.envValues.Version
}

//ServerPort returns the port no to listen for requests
func (cfg *ApplicationConfig) ServerPort() int {
	return cfg.envValues.ServerPort
}

//LogLevel returns the configured logrus level name
func (cfg *ApplicationConfig) LogLevel() string {
	return cfg.envValues.LogLevel
}

//EMSClient returns the backend api client
func (cfg *ApplicationConfig) EMSClient() ems.ClientInterface {
	return cfg.emsClient
}

//SessionStore returns where the logged in user is kept
func (cfg *ApplicationConfig) SessionStore() emssession.Store {
	return cfg.store
}

//LoaderStatus returns the shared loading indicator
func (cfg *ApplicationConfig) LoaderStatus() *loader.Status {
	return cfg.status
}

//ChartRegistry returns the dashboard chart registry
func (cfg *ApplicationConfig) ChartRegistry() *charts.Registry {
	return cfg.registry
}

//Mailer returns the SES report mailer
func (cfg *ApplicationConfig) Mailer() *report.Mailer {
	return cfg.mailer
}

//NewApplicationConfig loads config values from environment and initialises config
func NewApplicationConfig() (*ApplicationConfig, error) {
	envValues := NewEnvironmentConfig()
	return newApplicationConfig(envValues)
}

func newApplicationConfig(envValues *envConfig) (*ApplicationConfig, error) {
	if envValues.EMSBaseURL == "" {
		return nil, errors.New("EMS_API_BASE_URL must be set")
	}
	if envValues.HTTPTimeoutSeconds <= 0 {
		return nil, errors.New("HTTP_TIMEOUT_SECONDS must be positive")
	}

	sessionFile := envValues.SessionFileLocation
	if sessionFile == "" {
		sessionFile = filepath.Join(os.TempDir(), sessionFileName)
	}

	status := loader.NewStatus()
	httpCommand := NewHTTPCommand(time.Duration(envValues.HTTPTimeoutSeconds) * time.Second)
	emsClient := ems.NewClient(envValues.EMSBaseURL, httpCommand, loader.Multi(loader.Log(log.StandardLogger()), status))

	var mailer *report.Mailer
	if envValues.EmailTo != "" && envValues.EmailFrom != "" {
		emailClient := ses.New(session.New(), aws.NewConfig().WithRegion(envValues.AWSRegion))
		mailer = report.NewMailer(emailClient, envValues.EmailFrom, envValues.EmailTo)
	} else {
		log.Info("EMAIL_TO or EMAIL_FROM not set, roster import reports will not be mailed")
	}

	return &ApplicationConfig{
		envValues: envValues,
		emsClient: emsClient,
		store:     emssession.NewFileStore(sessionFile),
		status:    status,
		registry:  charts.NewRegistry(),
		mailer:    mailer,
	}, nil
}

// NewHTTPCommand returns the HTTP client
func NewHTTPCommand(timeout time.Duration) customhttp.HTTPCommand {
	httpCommand := customhttp.New(
		customhttp.WithHTTPClient(&http.Client{Timeout: timeout}),
		customhttp.WithRequestID(),
		customhttp.WithRequestLogging(),
	).Build()

	return httpCommand
}
