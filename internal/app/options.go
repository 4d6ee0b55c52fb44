package app

// 运行模式
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

// Options 应用启动选项
type Options struct {
	Mode string
}

// Normalize 归一化启动选项
func (o Options) Normalize() Options {
	switch o.Mode {
	case ModeAPI, ModeWorker:
	default:
		o.Mode = ModeAll
	}
	return o
}
