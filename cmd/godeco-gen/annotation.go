package main

import (
	"regexp"
	"strings"

	"github.com/a-peyrard/godeco/set"
	"github.com/rs/zerolog"
)

const (
	proxyAnnotationTag       = "@proxy"
	constructorAnnotationTag = "@constructor"
)

var propertiesPattern = regexp.MustCompile(`(\w+)=(?:"([^"]*)"|(\w+))`)

// Annotation is the annotation line of a doc comment, with the rest of the comment as description.
type Annotation struct {
	logger      *zerolog.Logger
	description string
	properties  map[string]string
}

// Named returns the name property, used to name the generated proxy.
func (a Annotation) Named() (named string, found bool) {
	named, found = a.properties["name"]
	return named, found
}

func (a Annotation) UnknownProperties(known ...string) []string {
	knownSet := set.NewWithValues(known...)
	var unknown []string
	for key := range a.properties {
		if !knownSet.Contains(key) {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

func hasAnnotation(docText string, tag string) bool {
	for _, line := range strings.Split(docText, "\n") {
		line = strings.TrimSpace(line)
		if line == tag || strings.HasPrefix(line, tag+" ") {
			return true
		}
	}
	return false
}

func parseAnnotation(logger *zerolog.Logger, docText string, tag string) Annotation {
	var (
		descriptionLines []string
		annotationLine   string
	)

	// separate the annotation line from the description
	for _, line := range strings.Split(docText, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, tag) {
			annotationLine = line
		} else if line != "" && !strings.HasPrefix(line, "@") {
			descriptionLines = append(descriptionLines, line)
		}
	}

	return Annotation{
		logger:      logger,
		description: strings.TrimSpace(strings.Join(descriptionLines, "\n")),
		properties:  parseProperties(annotationLine, tag),
	}
}

func parseProperties(line string, tag string) map[string]string {
	properties := make(map[string]string)

	content := strings.TrimSpace(strings.TrimPrefix(line, tag))
	if content == "" {
		return properties
	}

	for _, match := range propertiesPattern.FindAllStringSubmatch(content, -1) {
		key := match[1]
		// match[2] is quoted value, match[3] is unquoted value
		value := match[2]
		if value == "" {
			value = match[3]
		}
		properties[key] = value
	}

	return properties
}
