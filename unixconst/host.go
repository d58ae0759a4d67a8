package unixconst

import "sync"

var loadHost = sync.OnceValues(func() (Constants, error) {
	return Load(HostSource())
})

// HostSource returns a fresh copy of the constant table for the running GOOS.
// The table is generated from golang.org/x/sys/unix; on unsupported platforms it is empty.
func HostSource() Source {
	return hostSource()
}

// Host loads constants of the running host.
// The host table is read only once per process; later calls return copies of the same record.
func Host() (Constants, error) {
	return loadHost()
}

// MustHost is like [Host] but panics if the host lacks any required constant.
func MustHost() Constants {
	c, err := Host()
	if err != nil {
		panic(err)
	}
	return c
}
