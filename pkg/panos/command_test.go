package panos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpCommandToXml(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		command  string
		expected string
	}{
		{"show system info", "<show><system><info></info></system></show>"},
		{"request batch software check", "<request><batch><software><check></check></software></batch></request>"},
		{`show jobs id "42"`, "<show><jobs><id>42</id></jobs></show>"},
		{`delete software version "10.1.3-h1"`, "<delete><software><version>10.1.3-h1</version></software></delete>"},
		{`request batch software download file "PanOS_vm-10.1.0"`, "<request><batch><software><download><file>PanOS_vm-10.1.0</file></download></software></batch></request>"},
		{`a "x & y" b`, "<a>x &amp; y</a><b></b>"},
	}
	for _, test := range tests {
		xmlCommand, err := OpCommandToXml(test.command)
		assert.NoError(err, test.command)
		assert.Equal(test.expected, xmlCommand, test.command)
	}
}

func TestOpCommandToXmlInvalid(t *testing.T) {
	assert := assert.New(t)

	for _, command := range []string{"", `"value"`, `show "unterminated`, "show <system>"} {
		_, err := OpCommandToXml(command)
		assert.Error(err, command)
	}
}
