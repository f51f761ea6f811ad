package engines

import (
	engine "github.com/zsmartex/obex/server"
)

// BookOperationsWorker drains the book operation queue into the engine
// server. One consumer per deployment; the books are not shared.
type BookOperationsWorker struct {
	Server *engine.EngineServer
}

func NewBookOperationsWorker() *BookOperationsWorker {
	return &BookOperationsWorker{
		Server: engine.NewEngineServer(),
	}
}

func (w *BookOperationsWorker) Process(payload []byte) error {
	return w.Server.Process(payload)
}
