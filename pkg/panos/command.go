package panos

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

type commandToken struct {
	value  string
	quoted bool
}

// Converts an operational command in cli form (eg. `show jobs id "42"`) into the xml form used by the api.
// Words become nested elements, a quoted value becomes the text of the preceding element and closes it.
func OpCommandToXml(command string) (string, error) {
	tokens, err := tokenizeCommand(command)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", fmt.Errorf("empty command")
	}
	var buffer bytes.Buffer
	openTags := []string{}
	for _, token := range tokens {
		if !token.quoted {
			buffer.WriteString("<" + token.value + ">")
			openTags = append(openTags, token.value)
			continue
		}
		if len(openTags) == 0 {
			return "", fmt.Errorf("command '%s' starts with a value", command)
		}
		if err := xml.EscapeText(&buffer, []byte(token.value)); err != nil {
			return "", err
		}
		lastTag := openTags[len(openTags)-1]
		openTags = openTags[:len(openTags)-1]
		buffer.WriteString("</" + lastTag + ">")
	}
	for i := len(openTags) - 1; i >= 0; i-- {
		buffer.WriteString("</" + openTags[i] + ">")
	}
	return buffer.String(), nil
}

func tokenizeCommand(command string) ([]*commandToken, error) {
	tokens := []*commandToken{}
	var current strings.Builder
	inQuotes := false
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, &commandToken{value: current.String()})
			current.Reset()
		}
	}
	for _, r := range command {
		switch {
		case r == '"' && inQuotes:
			tokens = append(tokens, &commandToken{value: current.String(), quoted: true})
			current.Reset()
			inQuotes = false
		case r == '"':
			flush()
			inQuotes = true
		case !inQuotes && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			if !inQuotes && strings.ContainsRune("<>&/'", r) {
				return nil, fmt.Errorf("invalid character '%c' in command '%s'", r, command)
			}
			current.WriteRune(r)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote in command '%s'", command)
	}
	flush()
	return tokens, nil
}
