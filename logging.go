package main

import (
	"log"
	"unicode/utf8"

	"github.com/fatih/color"
)

var debugEnabled bool

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}

func logStep(format string, args ...interface{}) {
	log.Printf(color.CyanString("→")+" "+format, args...)
}

func logOK(format string, args ...interface{}) {
	log.Printf(color.GreenString("✓")+" "+format, args...)
}

func logWarn(format string, args ...interface{}) {
	log.Printf(color.YellowString("⚠")+" "+format, args...)
}

func logFail(format string, args ...interface{}) {
	log.Printf(color.RedString("✗")+" "+format, args...)
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
