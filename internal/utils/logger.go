package utils

import (
	"log"
	"strings"

	"github.com/fatih/color"
)

var (
	infoTag  = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnTag  = color.New(color.FgYellow, color.Bold).SprintFunc()
	errorTag = color.New(color.FgRed, color.Bold).SprintFunc()
)

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging full payloads; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	LogInfo(requestID, module, action, message)
}

func LogInfo(requestID, module, action, message string) {
	logLine(infoTag, "INFO", requestID, module, action, message)
}

func LogWarn(requestID, module, action, message string) {
	logLine(warnTag, "WARN", requestID, module, action, message)
}

func LogError(requestID, module, action string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	logLine(errorTag, "ERROR", requestID, module, action, msg)
}

// LogStatus picks the level from an HTTP status: 5xx is ERROR, 4xx is WARN.
func LogStatus(requestID, module, action string, status int, message string) {
	switch {
	case status >= 500:
		logLine(errorTag, "ERROR", requestID, module, action, message)
	case status >= 400:
		logLine(warnTag, "WARN", requestID, module, action, message)
	default:
		logLine(infoTag, "INFO", requestID, module, action, message)
	}
}

func logLine(tag func(a ...interface{}) string, level, requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	log.Printf("%s [%s] action=%s request_id=%s msg=%s",
		tag(level), strings.ToUpper(module), action, req, message)
}
