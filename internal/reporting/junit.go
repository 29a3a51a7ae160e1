package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spboyer/journeys/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr,omitempty"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to the runs of one engine.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one journey run.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

// JUnitFailure is a journey that returned an error.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError is a run that failed outside the journey, e.g. a before_run hook.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit groups results into one test suite per engine, in the order
// engines first appear. Each run becomes a test case named after its folder.
func ConvertToJUnit(name string, results []models.JourneyResult) *JUnitTestSuites {
	out := &JUnitTestSuites{Name: name, TestSuites: []JUnitTestSuite{}}
	idx := map[models.EngineKey]int{}

	for i := range results {
		r := &results[i]
		si, ok := idx[r.EngineKey]
		if !ok {
			si = len(out.TestSuites)
			idx[r.EngineKey] = si
			out.TestSuites = append(out.TestSuites, JUnitTestSuite{
				Name:      suiteName(name, r.EngineKey),
				Timestamp: r.StartedAt.UTC().Format(time.RFC3339),
				Properties: []JUnitProperty{
					{Name: "engine", Value: string(r.EngineKey)},
				},
			})
		}
		suite := &out.TestSuites[si]

		tc := convertResult(suite.Name, r)
		suite.Tests++
		suite.Time += tc.Time
		switch {
		case tc.Failure != nil:
			suite.Failures++
		case tc.Error != nil:
			suite.Errors++
		}
		suite.TestCases = append(suite.TestCases, tc)
	}

	for _, s := range out.TestSuites {
		out.Tests += s.Tests
		out.Failures += s.Failures
		out.Errors += s.Errors
		out.Time += s.Time
	}
	return out
}

func suiteName(name string, engine models.EngineKey) string {
	if name == "" {
		return string(engine)
	}
	return name + "/" + string(engine)
}

func caseName(r *models.JourneyResult) string {
	if r.ArtifactsFolder != "" {
		return filepath.Base(r.ArtifactsFolder)
	}
	return r.RunID
}

func convertResult(classname string, r *models.JourneyResult) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      caseName(r),
		Classname: classname,
		Time:      float64(r.DurationMs) / 1000.0,
		SystemOut: formatAnnotations(r.Annotations),
	}
	if r.Succeeded() {
		return tc
	}

	kind, msg := "journey", "journey failed"
	if r.FailureReason != nil {
		if r.FailureReason.Kind != "" {
			kind = r.FailureReason.Kind
		}
		if r.FailureReason.Message != "" {
			msg = r.FailureReason.Message
		}
	}

	body := r.TraceFilePath
	if kind == "journey" {
		tc.Failure = &JUnitFailure{Message: msg, Type: "JourneyFailure", Body: body}
	} else {
		tc.Error = &JUnitError{Message: msg, Type: kind, Body: body}
	}
	return tc
}

func formatAnnotations(annotations []models.Annotation) string {
	if len(annotations) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range annotations {
		fmt.Fprintf(&b, "[%dms] %s\n", a.Offset, a.Message)
	}
	return b.String()
}

// WriteJUnit writes JUnit XML for results to the specified file path.
func WriteJUnit(path, name string, results []models.JourneyResult) error {
	suites := ConvertToJUnit(name, results)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0644)
}
