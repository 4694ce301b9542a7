// Package paciotest provides an in-memory PacioFS service for tests. It
// serves both the POSIX I/O and the volume administration service over an
// in-process bufconn listener.
package paciotest

import (
	"context"
	"net"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"

	"github.com/objectfs/posixfs/pkg/wire"
)

// Address is the target to dial together with the DialOption from Listen.
const Address = "passthrough:///paciotest"

// Hooks replace individual handlers. A nil hook falls through to the
// in-memory filesystem.
type Hooks struct {
	Stat    func(context.Context, *wire.StatRequest) (*wire.StatResponse, error)
	Read    func(context.Context, *wire.ReadRequest) (*wire.ReadResponse, error)
	Write   func(context.Context, *wire.WriteRequest) (*wire.WriteResponse, error)
	ReadDir func(context.Context, *wire.ReadDirRequest) (*wire.ReadDirResponse, error)
	Ping    func(context.Context) error
}

// Call is one recorded request.
type Call struct {
	Method   string
	Request  interface{}
	Metadata metadata.MD
}

type node struct {
	mode  wire.Mode
	uid   uint32
	gid   uint32
	rdev  uint64
	data  []byte
	ino   uint64
	mtime time.Time
}

// Server is an in-memory PacioFS service. Keys are volume-qualified paths
// such as "vol1:/a/b".
type Server struct {
	wire.UnimplementedPosixIoServiceServer
	Hooks Hooks

	mu      sync.Mutex
	nodes   map[string]*node
	volumes map[string]bool
	nextIno uint64
	nextFh  uint64
	calls   []Call
}

// NewServer returns a server with an empty root directory for each volume.
func NewServer(volumes ...string) *Server {
	s := &Server{
		nodes:   make(map[string]*node),
		volumes: make(map[string]bool),
		nextFh:  1,
	}
	for _, v := range volumes {
		s.addVolume(v)
	}
	return s
}

func (s *Server) addVolume(name string) {
	s.volumes[name] = true
	s.nextIno++
	s.nodes[name+":/"] = &node{mode: wire.IFDIR | wire.IRWXU | wire.IRGRP | wire.IXGRP | wire.IROTH | wire.IXOTH, ino: s.nextIno, mtime: time.Now()}
}

// Listen serves s on a bufconn listener until the test ends and returns the
// dial option connecting to it.
func (s *Server) Listen(t testing.TB) grpc.DialOption {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(
		grpc.ForceServerCodec(wire.Codec{}),
		grpc.UnaryInterceptor(s.record),
	)
	wire.RegisterPosixIoServiceServer(srv, s)
	wire.RegisterPacioFsServiceServer(srv, volumeService{s})

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
}

func (s *Server) record(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler) (interface{}, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	s.mu.Lock()
	s.calls = append(s.calls, Call{Method: info.FullMethod, Request: req, Metadata: md})
	s.mu.Unlock()
	return handler(ctx, req)
}

// Calls returns the requests received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// LastCall returns the most recent request for the full method name.
func (s *Server) LastCall(method string) (Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.calls) - 1; i >= 0; i-- {
		if s.calls[i].Method == method {
			return s.calls[i], true
		}
	}
	return Call{}, false
}

// Volumes returns the known volume names.
func (s *Server) Volumes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.volumes))
	for v := range s.volumes {
		names = append(names, v)
	}
	sort.Strings(names)
	return names
}

// PutFile creates or replaces a regular file.
func (s *Server) PutFile(key string, perm wire.Mode, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextIno++
	s.nodes[key] = &node{mode: wire.IFREG | perm.Perm(), data: append([]byte(nil), data...), ino: s.nextIno, mtime: time.Now()}
}

// File returns a copy of the file contents at key.
func (s *Server) File(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), n.data...), true
}

// Mode returns the wire mode of key.
func (s *Server) Mode(key string) (wire.Mode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[key]
	if !ok {
		return 0, false
	}
	return n.mode, true
}

func splitKey(key string) (volume, p string, ok bool) {
	volume, p, ok = strings.Cut(key, ":")
	if !ok || !strings.HasPrefix(p, "/") {
		return "", "", false
	}
	return volume, path.Clean(p), true
}

// lookupParent checks that the parent of key is an existing directory.
// Callers hold s.mu.
func (s *Server) lookupParent(key string) wire.Errno {
	volume, p, ok := splitKey(key)
	if !ok || !s.volumes[volume] {
		return wire.ENOENT
	}
	if p == "/" {
		return wire.EEXIST
	}
	parent, ok := s.nodes[volume+":"+path.Dir(p)]
	if !ok {
		return wire.ENOENT
	}
	if !parent.mode.IsDir() {
		return wire.ENOTDIR
	}
	return wire.ESUCCESS
}

// create adds a node. Callers hold s.mu.
func (s *Server) create(ctx context.Context, key string, mode wire.Mode, rdev uint64) wire.Errno {
	if errno := s.lookupParent(key); errno != wire.ESUCCESS {
		return errno
	}
	if _, exists := s.nodes[key]; exists {
		return wire.EEXIST
	}
	uid, gid := identity(ctx)
	s.nextIno++
	s.nodes[key] = &node{mode: mode, uid: uid, gid: gid, rdev: rdev, ino: s.nextIno, mtime: time.Now()}
	return wire.ESUCCESS
}

func identity(ctx context.Context) (uint32, uint32) {
	md, _ := metadata.FromIncomingContext(ctx)
	parse := func(key string) uint32 {
		vals := md.Get(key)
		if len(vals) == 0 {
			return 0
		}
		n, _ := strconv.ParseUint(vals[0], 10, 32)
		return uint32(n)
	}
	return parse("x-user"), parse("x-group")
}

func (s *Server) Ping(ctx context.Context, _ *wire.PingRequest) (*wire.PingResponse, error) {
	if s.Hooks.Ping != nil {
		if err := s.Hooks.Ping(ctx); err != nil {
			return nil, err
		}
	}
	return &wire.PingResponse{}, nil
}

func (s *Server) Stat(ctx context.Context, req *wire.StatRequest) (*wire.StatResponse, error) {
	if s.Hooks.Stat != nil {
		return s.Hooks.Stat(ctx, req)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[req.Path]
	if !ok {
		return &wire.StatResponse{Error: wire.ENOENT}, nil
	}

	nlink := uint32(1)
	if n.mode.IsDir() {
		nlink = 2
	}
	ts := wire.Timespec{Sec: n.mtime.Unix(), Nsec: int64(n.mtime.Nanosecond())}
	return &wire.StatResponse{Stat: &wire.Stat{
		Ino:     n.ino,
		Mode:    n.mode,
		Nlink:   nlink,
		Uid:     n.uid,
		Gid:     n.gid,
		Rdev:    n.rdev,
		Size:    int64(len(n.data)),
		Blksize: 4096,
		Blocks:  (int64(len(n.data)) + 511) / 512,
		Atim:    ts,
		Mtim:    ts,
		Ctim:    ts,
	}}, nil
}

func (s *Server) MkNod(ctx context.Context, req *wire.MkNodRequest) (*wire.MkNodResponse, error) {
	mode := req.Mode
	if mode.Type() == 0 {
		mode |= wire.IFREG
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return &wire.MkNodResponse{Error: s.create(ctx, req.Path, mode, uint64(uint32(req.Dev)))}, nil
}

func (s *Server) MkDir(ctx context.Context, req *wire.MkDirRequest) (*wire.MkDirResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &wire.MkDirResponse{Error: s.create(ctx, req.Path, wire.IFDIR|req.Mode.Perm(), 0)}, nil
}

func (s *Server) ChMod(_ context.Context, req *wire.ChModRequest) (*wire.ChModResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[req.Path]
	if !ok {
		return &wire.ChModResponse{Error: wire.ENOENT}, nil
	}
	n.mode = n.mode.Type() | req.Mode.Perm()
	return &wire.ChModResponse{}, nil
}

func (s *Server) ChOwn(_ context.Context, req *wire.ChOwnRequest) (*wire.ChOwnResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[req.Path]
	if !ok {
		return &wire.ChOwnResponse{Error: wire.ENOENT}, nil
	}
	n.uid, n.gid = req.Uid, req.Gid
	return &wire.ChOwnResponse{}, nil
}

func (s *Server) Open(_ context.Context, req *wire.OpenRequest) (*wire.OpenResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[req.Path]; !ok {
		return &wire.OpenResponse{Error: wire.ENOENT}, nil
	}
	fh := s.nextFh
	s.nextFh++
	return &wire.OpenResponse{Fh: fh}, nil
}

func (s *Server) Read(ctx context.Context, req *wire.ReadRequest) (*wire.ReadResponse, error) {
	if s.Hooks.Read != nil {
		return s.Hooks.Read(ctx, req)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[req.Path]
	switch {
	case !ok:
		return &wire.ReadResponse{Error: wire.ENOENT}, nil
	case n.mode.IsDir():
		return &wire.ReadResponse{Error: wire.EISDIR}, nil
	case req.Offset < 0:
		return &wire.ReadResponse{Error: wire.EINVAL}, nil
	}

	if req.Offset >= int64(len(n.data)) {
		return &wire.ReadResponse{Eof: true}, nil
	}
	end := req.Offset + int64(req.Size)
	if end > int64(len(n.data)) {
		end = int64(len(n.data))
	}
	buf := append([]byte(nil), n.data[req.Offset:end]...)
	return &wire.ReadResponse{Buf: buf, N: uint32(len(buf)), Eof: end == int64(len(n.data))}, nil
}

func (s *Server) Write(ctx context.Context, req *wire.WriteRequest) (*wire.WriteResponse, error) {
	if s.Hooks.Write != nil {
		return s.Hooks.Write(ctx, req)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[req.Path]
	switch {
	case !ok:
		return &wire.WriteResponse{Error: wire.ENOENT}, nil
	case n.mode.IsDir():
		return &wire.WriteResponse{Error: wire.EISDIR}, nil
	case req.Offset < 0:
		return &wire.WriteResponse{Error: wire.EINVAL}, nil
	}

	buf := req.Buf
	if int(req.Size) < len(buf) {
		buf = buf[:req.Size]
	}
	end := req.Offset + int64(len(buf))
	if end > int64(len(n.data)) {
		grown := make([]byte, end)
		copy(grown, n.data)
		n.data = grown
	}
	copy(n.data[req.Offset:], buf)
	n.mtime = time.Now()
	return &wire.WriteResponse{N: uint32(len(buf))}, nil
}

func (s *Server) ReadDir(ctx context.Context, req *wire.ReadDirRequest) (*wire.ReadDirResponse, error) {
	if s.Hooks.ReadDir != nil {
		return s.Hooks.ReadDir(ctx, req)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	dir, ok := s.nodes[req.Path]
	if !ok {
		return &wire.ReadDirResponse{Error: wire.ENOENT}, nil
	}
	if !dir.mode.IsDir() {
		return &wire.ReadDirResponse{Error: wire.ENOTDIR}, nil
	}

	volume, p, _ := splitKey(req.Path)
	var names []string
	for key := range s.nodes {
		v, child, ok := splitKey(key)
		if ok && v == volume && child != "/" && path.Dir(child) == p {
			names = append(names, path.Base(child))
		}
	}
	sort.Strings(names)

	resp := &wire.ReadDirResponse{Dirs: []wire.Dir{{Name: "."}, {Name: ".."}}}
	for _, name := range names {
		resp.Dirs = append(resp.Dirs, wire.Dir{Name: name})
	}
	return resp, nil
}

func (s *Server) Create(ctx context.Context, req *wire.CreateRequest) (*wire.CreateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if errno := s.create(ctx, req.Path, wire.IFREG|req.Mode.Perm(), 0); errno != wire.ESUCCESS {
		return &wire.CreateResponse{Error: errno}, nil
	}
	fh := s.nextFh
	s.nextFh++
	return &wire.CreateResponse{Fh: fh}, nil
}

type volumeService struct {
	s *Server
}

func (v volumeService) Ping(ctx context.Context, req *wire.PingRequest) (*wire.PingResponse, error) {
	return v.s.Ping(ctx, req)
}

func (v volumeService) CreateVolume(_ context.Context, req *wire.CreateVolumeRequest) (*wire.CreateVolumeResponse, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	name := ""
	if req.Volume != nil {
		name = req.Volume.Name
	}
	if !v.s.volumes[name] && name != "" {
		v.s.addVolume(name)
	}
	return &wire.CreateVolumeResponse{Volume: &wire.Volume{Name: name}}, nil
}
