package session

import "github.com/joindin/joindin/logger"

var sessionLog = logger.New("section", "session")

// InitSession forks the session logger from coreLogger.
func InitSession(coreLogger logger.MultiLogger) {
	sessionLog = coreLogger.New("section", "session")
}
