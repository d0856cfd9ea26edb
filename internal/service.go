package internal

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	emscontext "github.com/syrilster/ems-console/internal/context"
	"github.com/syrilster/ems-console/internal/ems"
	"github.com/syrilster/ems-console/internal/pages"
	"github.com/syrilster/ems-console/internal/report"
	"github.com/syrilster/ems-console/internal/session"
)

const (
	reportSubject = "Report: Employee roster import"
	reportTimeout = time.Minute
)

// ImportResult lists one line per processed roster row
type ImportResult struct {
	Created []string `json:"created"`
	Errors  []string `json:"errors"`
}

type Service struct {
	client ems.ClientInterface
	store  session.Store
	mailer *report.Mailer
	// sent is signalled after each background status mail, used by tests
	sent func(error)
}

func NewService(c ems.ClientInterface, store session.Store, mailer *report.Mailer) *Service {
	return &Service{
		client: c,
		store:  store,
		mailer: mailer,
	}
}

//ImportRoster creates an employee for every valid roster row under the logged in admin.
//Rows are processed in sheet order and a failing row never stops the import.
func (service Service) ImportRoster(ctx context.Context, data []byte) (*ImportResult, error) {
	contextLogger := log.WithContext(ctx)
	admin, err := pages.RequireAdmin(ctx, service.store)
	if err != nil {
		return nil, err
	}

	rows, rowErrors, err := report.ReadRoster(data)
	if err != nil {
		contextLogger.WithError(err).Error("Failed to read the roster")
		return nil, err
	}

	result := &ImportResult{Created: []string{}, Errors: []string{}}
	var lines []report.StatusLine
	for _, re := range rowErrors {
		result.Errors = append(result.Errors, re.Error())
		lines = append(lines, report.StatusLine{Line: re.Line, Email: re.Email, Failed: true, Detail: re.Reason})
	}

	for _, row := range rows {
		created, err := service.client.CreateEmployee(ctx, admin.ID, row.Employee)
		if err != nil {
			contextLogger.WithError(err).Errorf("Failed to create employee %s from row %d", row.Employee.Email, row.Line)
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s: %v", row.Line, row.Employee.Email, err))
			lines = append(lines, report.StatusLine{Line: row.Line, Email: row.Employee.Email, Failed: true, Detail: err.Error()})
			continue
		}

		detail := "created"
		if created != nil && created.ID != 0 {
			detail = fmt.Sprintf("created with id %d", created.ID)
		}
		result.Created = append(result.Created, fmt.Sprintf("row %d: %s %s", row.Line, row.Employee.Email, detail))
		lines = append(lines, report.StatusLine{Line: row.Line, Email: row.Employee.Email, Detail: detail})
	}

	contextLogger.Infof("Roster import finished: %d created, %d failed", len(result.Created), len(result.Errors))
	service.sendStatusReport(ctx, result, lines)
	return result, nil
}

// sendStatusReport mails the outcome in the background, outliving the request.
func (service Service) sendStatusReport(ctx context.Context, result *ImportResult, lines []report.StatusLine) {
	if !service.mailer.Enabled() {
		return
	}
	errorsString := strings.Join(result.Errors, "\n")
	if errorsString == "" {
		errorsString = "No errors found during the roster import. Please check attached report for audit trail."
	}
	body := fmt.Sprintf("%d employees created, %d rows failed.\n\n%s", len(result.Created), len(result.Errors), errorsString)
	mailCtx, cancel := emscontext.Detach(ctx, reportTimeout)
	go func() {
		defer cancel()
		service.sesSendEmail(mailCtx, body, lines)
	}()
}

func (service Service) sesSendEmail(ctx context.Context, body string, lines []report.StatusLine) {
	contextLogger := log.WithContext(ctx)
	err := service.sendEmail(ctx, body, lines)
	if err != nil {
		contextLogger.WithError(err).Error("Failed to send the roster import report")
	}
	if service.sent != nil {
		service.sent(err)
	}
}

func (service Service) sendEmail(ctx context.Context, body string, lines []report.StatusLine) error {
	attachment, err := report.StatusWorkbook(ctx, lines)
	if err != nil {
		return err
	}
	return service.mailer.SendReport(ctx, reportSubject, body, report.Attachment{Name: "import_report.xlsx", Data: attachment})
}
