package utils

import (
	"log"
	"strings"
)

// LogEvent writes one "[MODULE] action=... request_id=... msg=..." line.
// Keep msg to a short summary; request bodies do not belong in the log.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
