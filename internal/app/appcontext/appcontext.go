package appcontext

const (
	EnvCLI Env = iota
	EnvWorker
	EnvTest
)

type Env int

func (e Env) String() string {
	switch e {
	case EnvCLI:
		return "cli"
	case EnvWorker:
		return "worker"
	case EnvTest:
		return "test"
	default:
		return "unknown"
	}
}

type Ctx struct {
	Env Env
}

func Declare(env Env) Ctx {
	return Ctx{
		Env: env,
	}
}
