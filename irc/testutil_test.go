package irc

import "gopkg.in/inconshreveable/log15.v2"

func discardLogger() log15.Logger {
	log := log15.New()
	log.SetHandler(log15.DiscardHandler())
	return log
}
