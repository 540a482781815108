package repository

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

// fakeRedis speaks enough RESP2 for ListCache: GET, SET, DEL, INCR and
// WATCH/MULTI/EXEC transactions. Every write bumps a per-key revision that
// WATCH compares at EXEC time.
type fakeRedis struct {
	ln net.Listener

	mu   sync.Mutex
	data map[string]string
	rev  map[string]int
	// beforeExec runs with the lock held, just before a transaction commits.
	beforeExec func()
}

func newFakeRedis(t *testing.T) (*fakeRedis, *redis.Client) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	f := &fakeRedis{ln: ln, data: map[string]string{}, rev: map[string]int{}}
	go f.serve()

	rdb := redis.NewClient(&redis.Options{Addr: ln.Addr().String(), MaxRetries: -1})
	t.Cleanup(func() {
		rdb.Close()
		ln.Close()
	})
	return f, rdb
}

func (f *fakeRedis) serve() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

// put writes a key directly, as another redis client would.
func (f *fakeRedis) put(key, val string) {
	f.data[key] = val
	f.rev[key]++
}

func (f *fakeRedis) get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

type fakeConn struct {
	watched map[string]int
	multi   bool
	queued  [][]string
}

func (f *fakeRedis) handle(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	state := &fakeConn{}
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}
		if _, err := io.WriteString(conn, f.dispatch(state, args)); err != nil {
			return
		}
	}
}

func readCommand(r *bufio.Reader) ([]string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, "*") {
		return nil, fmt.Errorf("unexpected %q", line)
	}
	n, err := strconv.Atoi(line[1:])
	if err != nil {
		return nil, err
	}
	args := make([]string, n)
	for i := range args {
		header, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.TrimRight(header, "\r\n")[1:])
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args[i] = string(buf[:size])
	}
	return args, nil
}

func simple(s string) string { return "+" + s + "\r\n" }
func integer(n int) string { return ":" + strconv.Itoa(n) + "\r\n" }
func bulk(s string) string { return "$" + strconv.Itoa(len(s)) + "\r\n" + s + "\r\n" }
func respErr(s string) string { return "-ERR " + s + "\r\n" }

const nilBulk = "$-1\r\n"

func (f *fakeRedis) dispatch(c *fakeConn, args []string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	cmd := strings.ToUpper(args[0])
	if c.multi && cmd != "EXEC" && cmd != "DISCARD" && cmd != "MULTI" {
		c.queued = append(c.queued, args)
		return simple("QUEUED")
	}

	switch cmd {
	case "WATCH":
		if c.watched == nil {
			c.watched = map[string]int{}
		}
		for _, k := range args[1:] {
			c.watched[k] = f.rev[k]
		}
		return simple("OK")
	case "UNWATCH":
		c.watched = nil
		return simple("OK")
	case "MULTI":
		c.multi = true
		c.queued = nil
		return simple("OK")
	case "DISCARD":
		c.multi, c.queued, c.watched = false, nil, nil
		return simple("OK")
	case "EXEC":
		queued, watched := c.queued, c.watched
		c.multi, c.queued, c.watched = false, nil, nil
		if f.beforeExec != nil {
			f.beforeExec()
		}
		for k, rev := range watched {
			if f.rev[k] != rev {
				return "*-1\r\n"
			}
		}
		var b strings.Builder
		b.WriteString("*" + strconv.Itoa(len(queued)) + "\r\n")
		for _, q := range queued {
			b.WriteString(f.apply(q))
		}
		return b.String()
	}
	return f.apply(args)
}

func (f *fakeRedis) apply(args []string) string {
	switch strings.ToUpper(args[0]) {
	case "PING":
		return simple("PONG")
	case "GET":
		if v, ok := f.data[args[1]]; ok {
			return bulk(v)
		}
		return nilBulk
	case "SET":
		f.put(args[1], args[2])
		return simple("OK")
	case "DEL":
		n := 0
		for _, k := range args[1:] {
			if _, ok := f.data[k]; ok {
				delete(f.data, k)
				f.rev[k]++
				n++
			}
		}
		return integer(n)
	case "INCR":
		n := 0
		if v, ok := f.data[args[1]]; ok {
			var err error
			if n, err = strconv.Atoi(v); err != nil {
				return respErr("value is not an integer or out of range")
			}
		}
		n++
		f.put(args[1], strconv.Itoa(n))
		return integer(n)
	}
	return respErr("unknown command '" + args[0] + "'")
}
