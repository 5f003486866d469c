package panos

import (
	"fmt"
	"strings"
)

// The scope of the software commands. Firewalls manage their own software, Panorama manages batches for devices.
type SoftwareScope string

const (
	SOFTWARE_SCOPE_SYSTEM SoftwareScope = "system"
	SOFTWARE_SCOPE_BATCH  SoftwareScope = "batch"
)

// The family reported by Panorama in the system info.
const PanoramaFamily = "pc"

type apiResponse struct {
	Status  string     `xml:"status,attr"`
	Code    string     `xml:"code,attr"`
	Message apiMessage `xml:"msg"`
	Result  struct {
		Message apiMessage `xml:"msg"`
	} `xml:"result"`
}

type apiMessage struct {
	Text  string   `xml:",chardata"`
	Lines []string `xml:"line"`
}

func (m apiMessage) String() string {
	lines := []string{}
	for _, line := range m.Lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) > 0 {
		return strings.Join(lines, " ")
	}
	return strings.TrimSpace(m.Text)
}

// An error reported by the device api.
type ApiError struct {
	Status  string
	Code    string
	Message string
}

func (e *ApiError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api request failed with status '%s' (code %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api request failed with status '%s': %s", e.Status, e.Message)
}

// The system information of a device.
type SystemInfo struct {
	Hostname  string `xml:"hostname"`
	Model     string `xml:"model"`
	Family    string `xml:"family"`
	Serial    string `xml:"serial"`
	SwVersion string `xml:"sw-version"`
}

// Checks if the device is a Panorama.
func (s *SystemInfo) IsPanorama() bool {
	return s.Family == PanoramaFamily
}

type systemInfoResponse struct {
	System *SystemInfo `xml:"result>system"`
}

// A software version that is available for a device.
type SoftwareVersion struct {
	Version    string `xml:"version"`
	FileName   string `xml:"filename"`
	Platform   string `xml:"platform"`
	Sha256     string `xml:"sha256"`
	Size       string `xml:"size"`
	ReleasedOn string `xml:"released-on"`
	Downloaded string `xml:"downloaded"`
	Current    string `xml:"current"`
}

type softwareCheckResponse struct {
	Versions []*SoftwareVersion `xml:"result>sw-updates>versions>entry"`
}

type jobEnqueuedResponse struct {
	JobId string `xml:"result>job"`
}

// The state of a job on the device.
type Job struct {
	Id       string   `xml:"id"`
	Type     string   `xml:"type"`
	Status   string   `xml:"status"`
	Result   string   `xml:"result"`
	Progress string   `xml:"progress"`
	Details  []string `xml:"details>line"`
}

// Checks if the job is finished.
func (j *Job) IsFinished() bool {
	return j.Status == "FIN"
}

// Checks if the job finished successfully.
func (j *Job) IsSuccess() bool {
	return j.IsFinished() && j.Result == "OK"
}

type jobResponse struct {
	Job *Job `xml:"result>job"`
}

// An error for a job that did not finish successfully.
type JobFailedError struct {
	JobId   string
	Result  string
	Details []string
}

func (e *JobFailedError) Error() string {
	return fmt.Sprintf("job %s finished with result '%s': %s", e.JobId, e.Result, strings.Join(e.Details, " "))
}
