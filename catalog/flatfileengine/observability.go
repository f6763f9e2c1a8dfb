package flatfileengine

import (
	"github.com/AntonStoeckl/smart-library-go/catalog/linecodec"
)

const (
	logMsgSkippedLine = "skipped malformed line"
	logMsgLoaded      = "loaded file"
	logMsgSaved       = "saved file"
	logAttrFile       = "file"
	logAttrLine       = "line"
	logAttrRecords    = "records"
	logAttrError      = "error"
)

func (e *Engine) logSkipped(path string, skipped []linecodec.LineError) {
	if e.logger == nil {
		return
	}

	for _, lineErr := range skipped {
		e.logger.Warn(logMsgSkippedLine, logAttrFile, path, logAttrLine, lineErr.Line, logAttrError, lineErr.Err.Error())
	}
}

func (e *Engine) logDebug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
