package panos

import (
	"context"
	"crypto/tls"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout         = 5 * time.Minute
	defaultJobPollInterval = 10 * time.Second
	defaultJobPollAttempts = 360
)

// Settings to create a Client.
type ClientSettings struct {
	Logger *slog.Logger
	// The hostname or address of the device. Can also be a full url (eg. for tests).
	Host string
	// The api key used for all requests.
	ApiKey string
	// Skips the verification of the device certificate.
	Insecure bool
	// The time between two polls of a job. Defaults to 10 seconds.
	JobPollInterval time.Duration
	// The maximum number of polls of a job. Defaults to 360.
	JobPollAttempts uint
}

// A client for the XML api of firewalls and Panorama.
type Client struct {
	logger          *slog.Logger
	restClient      *resty.Client
	apiKey          string
	jobPollInterval time.Duration
	jobPollAttempts uint
}

func NewClient(settings *ClientSettings) *Client {
	logger := settings.Logger
	if logger == nil {
		logger = slog.Default()
	}
	baseUrl := settings.Host
	if !strings.HasPrefix(baseUrl, "http://") && !strings.HasPrefix(baseUrl, "https://") {
		baseUrl = "https://" + baseUrl
	}
	restClient := resty.New().
		SetBaseURL(strings.TrimSuffix(baseUrl, "/")).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/xml")
	if settings.Insecure {
		restClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	client := &Client{
		logger:          logger.With(slog.String("device", settings.Host)),
		restClient:      restClient,
		apiKey:          settings.ApiKey,
		jobPollInterval: settings.JobPollInterval,
		jobPollAttempts: settings.JobPollAttempts,
	}
	if client.jobPollInterval <= 0 {
		client.jobPollInterval = defaultJobPollInterval
	}
	if client.jobPollAttempts == 0 {
		client.jobPollAttempts = defaultJobPollAttempts
	}
	return client
}

// Runs an operational command in cli form and decodes the response into target (if not nil).
func (c *Client) Op(ctx context.Context, command string, target any) error {
	xmlCommand, err := OpCommandToXml(command)
	if err != nil {
		return err
	}
	return c.OpXml(ctx, xmlCommand, target)
}

// Runs an operational command in xml form and decodes the response into target (if not nil).
func (c *Client) OpXml(ctx context.Context, xmlCommand string, target any) error {
	c.logger.Debug(fmt.Sprintf("Running op command: %s", xmlCommand))
	resp, err := c.restClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"type": "op",
			"cmd":  xmlCommand,
			"key":  c.apiKey,
		}).
		Post("/api/")
	if err != nil {
		return fmt.Errorf("failed sending the api request: %w", err)
	}
	body := resp.Body()
	var response apiResponse
	if err := xml.Unmarshal(body, &response); err != nil {
		if resp.IsError() {
			return fmt.Errorf("api request failed with http status '%s'", resp.Status())
		}
		return fmt.Errorf("failed parsing the api response: %w", err)
	}
	if response.Status != "success" {
		message := response.Message.String()
		if message == "" {
			message = response.Result.Message.String()
		}
		return &ApiError{Status: response.Status, Code: response.Code, Message: message}
	}
	if target != nil {
		if err := xml.Unmarshal(body, target); err != nil {
			return fmt.Errorf("failed parsing the api result: %w", err)
		}
	}
	return nil
}

// Gets the system information of the device.
func (c *Client) SystemInfo(ctx context.Context) (*SystemInfo, error) {
	var response systemInfoResponse
	if err := c.Op(ctx, "show system info", &response); err != nil {
		return nil, err
	}
	if response.System == nil {
		return nil, fmt.Errorf("no system info in the api response")
	}
	return response.System, nil
}

// Refreshes and returns the list of software versions available for download.
func (c *Client) CheckSoftware(ctx context.Context, scope SoftwareScope) ([]*SoftwareVersion, error) {
	var response softwareCheckResponse
	if err := c.Op(ctx, fmt.Sprintf("request %s software check", scope), &response); err != nil {
		return nil, err
	}
	return response.Versions, nil
}

// Downloads the given version on a firewall and waits until the download finished.
func (c *Client) DownloadVersion(ctx context.Context, version string) error {
	xmlCommand := fmt.Sprintf("<request><system><software><download><sync-to-peer>no</sync-to-peer><version>%s</version></download></software></system></request>", escapeXml(version))
	return c.runJob(ctx, xmlCommand)
}

// Downloads the given file on Panorama and waits until the download finished.
func (c *Client) DownloadFile(ctx context.Context, fileName string) error {
	xmlCommand, err := OpCommandToXml(fmt.Sprintf("request batch software download file \"%s\"", fileName))
	if err != nil {
		return err
	}
	return c.runJob(ctx, xmlCommand)
}

// Exports a downloaded file with the given scp profile.
func (c *Client) ScpExport(ctx context.Context, scope SoftwareScope, fileName string, scpProfile string) error {
	xmlCommand := fmt.Sprintf("<request><%[1]s><software><scp-export><file>%[2]s</file><profile-name>%[3]s</profile-name></scp-export></software></%[1]s></request>",
		scope, escapeXml(fileName), escapeXml(scpProfile))
	return c.OpXml(ctx, xmlCommand, nil)
}

// Deletes a downloaded version from a firewall.
func (c *Client) DeleteVersion(ctx context.Context, version string) error {
	return c.Op(ctx, fmt.Sprintf("delete software version \"%s\"", version), nil)
}

// Deletes a downloaded file from Panorama.
func (c *Client) DeleteFile(ctx context.Context, fileName string) error {
	return c.Op(ctx, fmt.Sprintf("request batch software delete file \"%s\"", fileName), nil)
}

// Gets the current state of a job.
func (c *Client) GetJob(ctx context.Context, jobId string) (*Job, error) {
	var response jobResponse
	if err := c.Op(ctx, fmt.Sprintf("show jobs id \"%s\"", jobId), &response); err != nil {
		return nil, err
	}
	if response.Job == nil {
		return nil, fmt.Errorf("job %s not found", jobId)
	}
	return response.Job, nil
}

var errJobPending = errors.New("job is still pending")

// Polls the job until it is finished. Returns a JobFailedError if the job did not succeed.
func (c *Client) WaitForJob(ctx context.Context, jobId string) (*Job, error) {
	var job *Job
	err := retry.Do(
		func() error {
			var err error
			job, err = c.GetJob(ctx, jobId)
			if err != nil {
				return err
			}
			if !job.IsFinished() {
				c.logger.Debug(fmt.Sprintf("Job %s is at %s%%", jobId, job.Progress))
				return errJobPending
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.jobPollAttempts),
		retry.Delay(c.jobPollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return errors.Is(err, errJobPending) }),
	)
	if err != nil {
		if errors.Is(err, errJobPending) {
			return nil, fmt.Errorf("job %s did not finish in time", jobId)
		}
		return nil, err
	}
	if !job.IsSuccess() {
		return job, &JobFailedError{JobId: jobId, Result: job.Result, Details: job.Details}
	}
	return job, nil
}

func (c *Client) runJob(ctx context.Context, xmlCommand string) error {
	var response jobEnqueuedResponse
	if err := c.OpXml(ctx, xmlCommand, &response); err != nil {
		return err
	}
	if response.JobId == "" {
		return fmt.Errorf("no job id in the api response")
	}
	c.logger.Debug(fmt.Sprintf("Waiting for job %s", response.JobId))
	_, err := c.WaitForJob(ctx, response.JobId)
	return err
}

// Checks if the error says that a base image is required before the requested image can be loaded.
// The image is downloaded anyway in this case.
func IsBaseImageRequiredError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "base image must be loaded before")
}

// Checks if the error says that the image to delete was not downloaded.
func IsNotDownloadedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not downloaded")
}

func escapeXml(value string) string {
	var builder strings.Builder
	_ = xml.EscapeText(&builder, []byte(value))
	return builder.String()
}
