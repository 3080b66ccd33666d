package proc

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"

	"pulse/model"
)

// HostInfo reads the header details: hostname, uptime and load averages.
// Load averages are optional; platforms without them report zeros.
func HostInfo(ctx context.Context) (model.HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return model.HostInfo{}, errors.Wrap(err, "reading host info")
	}

	out := model.HostInfo{
		Hostname: info.Hostname,
		Uptime:   time.Duration(info.Uptime) * time.Second,
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		out.Load1, out.Load5, out.Load15 = avg.Load1, avg.Load5, avg.Load15
	}
	return out, nil
}
