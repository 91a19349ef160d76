package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

type apiError struct {
	Error interface{} `json:"error"` // string, or {field: message} for validation errors
}

// checkResponse turns a non-2xx response into an error carrying the server's message.
func checkResponse(resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}
	var body apiError
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != nil {
		return fmt.Errorf("%d: %v", resp.StatusCode(), body.Error)
	}
	if len(resp.Body()) > 0 {
		return fmt.Errorf("%d: %s", resp.StatusCode(), bytes.TrimSpace(resp.Body()))
	}
	return fmt.Errorf("%d: %s", resp.StatusCode(), resp.Status())
}

func (cli *commandLine) addTeacher(name, email, school, pwd string) error {
	var result struct {
		TeacherID string `json:"teacherId"`
	}
	resp, err := cli.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"name": name, "email": email, "school": school, "password": pwd}).
		SetResult(&result).
		Post(cli.baseURL + "/api/teacher/register")
	if err != nil {
		return errors.Wrap(err, "registering teacher")
	}
	if err = checkResponse(resp); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "teacher registered: %s\n", result.TeacherID)
	return nil
}

func (cli *commandLine) analytics() error {
	resp, err := cli.client.R().Get(cli.baseURL + "/api/admin/analytics")
	if err != nil {
		return errors.Wrap(err, "fetching analytics")
	}
	if err = checkResponse(resp); err != nil {
		return err
	}
	var out bytes.Buffer
	if err = json.Indent(&out, resp.Body(), "", "  "); err != nil {
		return errors.Wrap(err, "formatting analytics")
	}
	_, _ = fmt.Fprintln(cli.out, out.String())
	return nil
}

func (cli *commandLine) health() error {
	var result struct {
		Status string `json:"status"`
	}
	resp, err := cli.client.R().SetResult(&result).Get(cli.baseURL + "/api/health")
	if err != nil {
		return errors.Wrap(err, "checking health")
	}
	if err = checkResponse(resp); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cli.out, result.Status)
	return nil
}
