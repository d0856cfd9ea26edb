package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"github.com/syrilster/ems-console/internal/model"
)

// Roster columns, in sheet order
const (
	colFirstName = iota
	colLastName
	colEmail
	colPassword
	colGender
	colRole
	colDateOfBirth
	colHireDate
	colSalary
	colDepartmentID
	rosterColumns
)

var ErrEmptyRoster = errors.New("the uploaded roster has no sheets")

// RosterRow is a parsed roster line ready to be created. Line is the 1-based sheet row.
type RosterRow struct {
	Line     int
	Employee model.Employee
}

type RosterError struct {
	Line   int
	Email  string
	Reason string
}

func (e RosterError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}

//ReadRoster parses the first sheet of an uploaded xlsx roster. The header row is skipped, blank rows
//are ignored and invalid rows are reported without stopping the parse.
func ReadRoster(data []byte) ([]RosterRow, []RosterError, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open the uploaded file. Please confirm the file is in xlsx format: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, nil, ErrEmptyRoster
	}

	var rows []RosterRow
	var rowErrors []RosterError
	for index, row := range file.Sheets[0].Rows {
		// header
		if index == 0 || row == nil {
			continue
		}
		values := make([]string, rosterColumns)
		blank := true
		for i := 0; i < rosterColumns && i < len(row.Cells); i++ {
			values[i] = strings.TrimSpace(row.Cells[i].Value)
			if values[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}

		line := index + 1
		employee, err := parseRosterRow(values)
		if err != nil {
			rowErrors = append(rowErrors, RosterError{Line: line, Email: values[colEmail], Reason: err.Error()})
			continue
		}
		rows = append(rows, RosterRow{Line: line, Employee: employee})
	}
	return rows, rowErrors, nil
}

func parseRosterRow(values []string) (model.Employee, error) {
	e := model.Employee{
		FirstName: values[colFirstName],
		LastName:  values[colLastName],
		Email:     values[colEmail],
		Password:  values[colPassword],
		Gender:    strings.ToUpper(values[colGender]),
		Role:      model.Role(strings.ToUpper(values[colRole])),
	}
	switch {
	case e.Email == "":
		return e, errors.New("email is required")
	case e.Password == "":
		return e, errors.New("password is required")
	case e.Gender == "":
		return e, errors.New("gender is required")
	}
	switch e.Role {
	case "":
		e.Role = model.RoleEmployee
	case model.RoleAdmin, model.RoleEmployee:
	default:
		return e, fmt.Errorf("invalid role %q", values[colRole])
	}

	var err error
	if e.DateOfBirth, err = rosterDate(values[colDateOfBirth]); err != nil {
		return e, fmt.Errorf("invalid date of birth: %w", err)
	}
	if e.HireDate, err = rosterDate(values[colHireDate]); err != nil {
		return e, fmt.Errorf("invalid hire date: %w", err)
	}
	if v := values[colSalary]; v != "" {
		salary, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return e, fmt.Errorf("invalid salary %q", v)
		}
		e.Salary = &salary
	}
	if v := values[colDepartmentID]; v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return e, fmt.Errorf("invalid department id %q", v)
		}
		e.DepartmentID = &id
	}
	return e, nil
}

// rosterDate accepts an Excel serial date or YYYY-MM-DD text
func rosterDate(value string) (*model.Date, error) {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return model.ParseDate(value)
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return nil, err
	}
	return model.NewDate(t.Year(), t.Month(), t.Day()), nil
}
