package wire

import (
	"bytes"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestErrno_Values(t *testing.T) {
	t.Parallel()

	all := Errnos()
	if len(all) != 80 {
		t.Fatalf("len(Errnos()) = %d, want 80", len(all))
	}
	if all[0] != ESUCCESS || !all[0].OK() {
		t.Errorf("first member = %v, want ESUCCESS", all[0])
	}
	if EOWNERDEAD != 79 {
		t.Errorf("EOWNERDEAD = %d, want 79", EOWNERDEAD)
	}

	seen := make(map[string]bool)
	for _, e := range all {
		name := e.String()
		if seen[name] {
			t.Errorf("duplicate name %q", name)
		}
		seen[name] = true
	}
}

func TestParseErrno(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      int32
		want    Errno
		wantErr bool
	}{
		{"success", 0, ESUCCESS, false},
		{"permission", 1, EPERM, false},
		{"last member", 79, EOWNERDEAD, false},
		{"past the end", 80, EIO, true},
		{"negative", -1, EIO, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseErrno(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseErrno(%d) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseErrno(%d) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestErrno_String(t *testing.T) {
	t.Parallel()

	if got := ENOENT.String(); got != "ENOENT" {
		t.Errorf("ENOENT.String() = %q", got)
	}
	if got := Errno(500).String(); got != "Errno(500)" {
		t.Errorf("Errno(500).String() = %q", got)
	}
	if got := EACCES.Error(); got != "remote error EACCES" {
		t.Errorf("EACCES.Error() = %q", got)
	}
}

func TestStatResponse_Decode(t *testing.T) {
	t.Parallel()

	in := &StatResponse{
		Stat: &Stat{
			Dev: 1, Ino: 42, Mode: IFREG | IRUSR | IWUSR, Nlink: 1,
			Uid: 1000, Gid: 100, Size: 4096, Blksize: 512, Blocks: 8,
			Atim: Timespec{Sec: 10, Nsec: 1},
			Mtim: Timespec{Sec: 20, Nsec: 2},
			Ctim: Timespec{Sec: 30, Nsec: 3},
		},
	}

	var out StatResponse
	if err := out.UnmarshalWire(Marshal(in)); err != nil {
		t.Fatalf("UnmarshalWire() error = %v", err)
	}
	if out.Stat == nil {
		t.Fatal("Stat not decoded")
	}
	if *out.Stat != *in.Stat {
		t.Errorf("Stat = %+v, want %+v", *out.Stat, *in.Stat)
	}
	if out.Error != ESUCCESS {
		t.Errorf("Error = %v, want ESUCCESS", out.Error)
	}
}

func TestDecode_RejectsUnknownErrno(t *testing.T) {
	t.Parallel()

	b := protowire.AppendTag(nil, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 4242)

	var resp MkDirResponse
	if err := resp.UnmarshalWire(b); err == nil {
		t.Fatal("UnmarshalWire() accepted an unknown errno")
	}
}

func TestDecode_SkipsUnknownFields(t *testing.T) {
	t.Parallel()

	b := Marshal(&OpenResponse{Fh: 7})
	b = protowire.AppendTag(b, 99, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 0xdeadbeef)
	b = protowire.AppendTag(b, 98, protowire.BytesType)
	b = protowire.AppendString(b, "ignored")

	var resp OpenResponse
	if err := resp.UnmarshalWire(b); err != nil {
		t.Fatalf("UnmarshalWire() error = %v", err)
	}
	if resp.Fh != 7 {
		t.Errorf("Fh = %d, want 7", resp.Fh)
	}
}

func TestDecode_WrongWireType(t *testing.T) {
	t.Parallel()

	b := protowire.AppendTag(nil, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)

	var req StatRequest
	if err := req.UnmarshalWire(b); err == nil {
		t.Fatal("UnmarshalWire() accepted a varint path")
	}
}

func TestDecode_Truncated(t *testing.T) {
	t.Parallel()

	b := Marshal(&WriteRequest{Path: "v:/f", Buf: []byte("hello")})
	var req WriteRequest
	if err := req.UnmarshalWire(b[:len(b)-2]); err == nil {
		t.Fatal("UnmarshalWire() accepted a truncated message")
	}
}

func TestNegativeInt32(t *testing.T) {
	t.Parallel()

	var req MkNodRequest
	if err := req.UnmarshalWire(Marshal(&MkNodRequest{Path: "v:/dev", Dev: -3})); err != nil {
		t.Fatalf("UnmarshalWire() error = %v", err)
	}
	if req.Dev != -3 {
		t.Errorf("Dev = %d, want -3", req.Dev)
	}
}

func TestReadDirResponse_KeepsOrder(t *testing.T) {
	t.Parallel()

	in := &ReadDirResponse{Dirs: []Dir{{Name: "a"}, {Name: "b"}, {Name: "c"}}}
	var out ReadDirResponse
	if err := out.UnmarshalWire(Marshal(in)); err != nil {
		t.Fatalf("UnmarshalWire() error = %v", err)
	}
	if len(out.Dirs) != 3 {
		t.Fatalf("len(Dirs) = %d, want 3", len(out.Dirs))
	}
	for i, want := range []string{"a", "b", "c"} {
		if out.Dirs[i].Name != want {
			t.Errorf("Dirs[%d] = %q, want %q", i, out.Dirs[i].Name, want)
		}
	}
}

func TestReadResponse_CopiesBuffer(t *testing.T) {
	t.Parallel()

	b := Marshal(&ReadResponse{Buf: []byte("abc"), N: 3, Eof: true})
	var out ReadResponse
	if err := out.UnmarshalWire(b); err != nil {
		t.Fatalf("UnmarshalWire() error = %v", err)
	}
	for i := range b {
		b[i] = 0
	}
	if !bytes.Equal(out.Buf, []byte("abc")) {
		t.Errorf("Buf = %q after clearing the input, want %q", out.Buf, "abc")
	}
	if !out.Eof || out.N != 3 {
		t.Errorf("N, Eof = %d, %v, want 3, true", out.N, out.Eof)
	}
}

func TestCodec(t *testing.T) {
	t.Parallel()

	var c Codec
	if c.Name() != "proto" {
		t.Errorf("Name() = %q, want proto", c.Name())
	}
	if _, err := c.Marshal("not a message"); err == nil {
		t.Error("Marshal(string) error = nil")
	}
	if err := c.Unmarshal(nil, new(int)); err == nil {
		t.Error("Unmarshal(*int) error = nil")
	}

	data, err := c.Marshal(&CreateVolumeRequest{Volume: &Volume{Name: "vol1"}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var req CreateVolumeRequest
	if err := c.Unmarshal(data, &req); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if req.Volume == nil || req.Volume.Name != "vol1" {
		t.Errorf("Volume = %+v, want vol1", req.Volume)
	}
}

func TestMode_Helpers(t *testing.T) {
	t.Parallel()

	m := IFDIR | IRWXU | ISVTX | Mode(1<<30)
	if m.Known() != IFDIR|IRWXU|ISVTX {
		t.Errorf("Known() = %#x", m.Known())
	}
	if m.Type() != IFDIR || !m.IsDir() || m.IsRegular() {
		t.Errorf("Type() = %#x", m.Type())
	}
	if m.Perm() != IRWXU|ISVTX {
		t.Errorf("Perm() = %#x", m.Perm())
	}
}
