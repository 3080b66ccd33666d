package monitor

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"pulse/model"
	"pulse/ui"
)

// HostFunc reads host details for the header. proc.HostInfo is one.
type HostFunc func(ctx context.Context) (model.HostInfo, error)

type lister interface {
	Processes(ctx context.Context) ([]model.ProcessRow, error)
}

// Refresher posts process snapshots. The dashboard reconciles them into its
// table, so rows here carry no order.
type Refresher struct {
	procs lister
	host  HostFunc
	sink  Sink
	log   *logrus.Entry
}

func NewRefresher(p lister, host HostFunc, sink Sink, log *logrus.Entry) *Refresher {
	return &Refresher{procs: p, host: host, sink: sink, log: log}
}

func (r *Refresher) Refresh(ctx context.Context) error {
	rows, err := r.procs.Processes(ctx)
	if err != nil {
		return errors.Wrap(err, "listing processes")
	}
	r.sink.Send(ui.ProcessesMsg{Rows: rows})

	if r.host == nil {
		return nil
	}
	info, err := r.host(ctx)
	if err != nil {
		r.log.WithError(err).Debug("host info unavailable")
		return nil
	}
	r.sink.Send(ui.HostMsg{Info: info})
	return nil
}
