package arweave

import (
	"github.com/warp-contracts/loader/src/utils/logger"

	"github.com/sirupsen/logrus"
)

// Adapts the sublogger to resty.
// Resty is pretty chatty about failed requests, with forceTrace
// all of its logs get demoted to the trace level.
type Logger struct {
	log        *logrus.Entry
	forceTrace bool
}

func NewLogger(forceTrace bool) (self *Logger) {
	self = new(Logger)
	self.log = logger.NewSublogger("arweave-resty")
	self.forceTrace = forceTrace
	return
}

func (self *Logger) Errorf(format string, v ...interface{}) {
	if self.forceTrace {
		self.log.Tracef(format, v...)
		return
	}
	self.log.Errorf(format, v...)
}

func (self *Logger) Warnf(format string, v ...interface{}) {
	if self.forceTrace {
		self.log.Tracef(format, v...)
		return
	}
	self.log.Warnf(format, v...)
}

func (self *Logger) Debugf(format string, v ...interface{}) {
	self.log.Debugf(format, v...)
}
