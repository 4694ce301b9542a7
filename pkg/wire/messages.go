package wire

// Timespec is a (seconds, nanoseconds) timestamp.
type Timespec struct {
	Sec  int64
	Nsec int64
}

func (m *Timespec) AppendWire(b []byte) []byte {
	b = appendInt64(b, 1, m.Sec)
	return appendInt64(b, 2, m.Nsec)
}

func (m *Timespec) UnmarshalWire(b []byte) error {
	*m = Timespec{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.Sec = f.asInt64()
		case 2:
			m.Nsec = f.asInt64()
		}
	})
}

// Stat is the remote stat record. Mode is in wire layout.
type Stat struct {
	Dev     uint64
	Ino     uint64
	Mode    Mode
	Nlink   uint32
	Uid     uint32
	Gid     uint32
	Rdev    uint64
	Size    int64
	Blksize int32
	Blocks  int64
	Atim    Timespec
	Mtim    Timespec
	Ctim    Timespec
}

func (m *Stat) AppendWire(b []byte) []byte {
	b = appendVarint(b, 1, m.Dev)
	b = appendVarint(b, 2, m.Ino)
	b = appendVarint(b, 3, uint64(m.Mode))
	b = appendVarint(b, 4, uint64(m.Nlink))
	b = appendVarint(b, 5, uint64(m.Uid))
	b = appendVarint(b, 6, uint64(m.Gid))
	b = appendVarint(b, 7, m.Rdev)
	b = appendInt64(b, 8, m.Size)
	b = appendInt32(b, 9, m.Blksize)
	b = appendInt64(b, 10, m.Blocks)
	b = appendMessage(b, 11, &m.Atim)
	b = appendMessage(b, 12, &m.Mtim)
	return appendMessage(b, 13, &m.Ctim)
}

func (m *Stat) UnmarshalWire(b []byte) error {
	*m = Stat{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.Dev = f.asUint64()
		case 2:
			m.Ino = f.asUint64()
		case 3:
			m.Mode = f.asMode()
		case 4:
			m.Nlink = f.asUint32()
		case 5:
			m.Uid = f.asUint32()
		case 6:
			m.Gid = f.asUint32()
		case 7:
			m.Rdev = f.asUint64()
		case 8:
			m.Size = f.asInt64()
		case 9:
			m.Blksize = f.asInt32()
		case 10:
			m.Blocks = f.asInt64()
		case 11:
			f.asMessage(&m.Atim)
		case 12:
			f.asMessage(&m.Mtim)
		case 13:
			f.asMessage(&m.Ctim)
		}
	})
}

type PingRequest struct{}

func (m *PingRequest) AppendWire(b []byte) []byte { return b }

func (m *PingRequest) UnmarshalWire(b []byte) error { return walk(b, func(field) {}) }

type PingResponse struct{}

func (m *PingResponse) AppendWire(b []byte) []byte { return b }

func (m *PingResponse) UnmarshalWire(b []byte) error { return walk(b, func(field) {}) }

type StatRequest struct {
	Path string
}

func (m *StatRequest) AppendWire(b []byte) []byte { return appendString(b, 1, m.Path) }

func (m *StatRequest) UnmarshalWire(b []byte) error {
	*m = StatRequest{}
	return walk(b, func(f field) {
		if f.num == 1 {
			m.Path = f.asString()
		}
	})
}

type StatResponse struct {
	Stat  *Stat
	Error Errno
}

func (m *StatResponse) AppendWire(b []byte) []byte {
	if m.Stat != nil {
		b = appendMessage(b, 1, m.Stat)
	}
	return appendInt32(b, 2, int32(m.Error))
}

func (m *StatResponse) UnmarshalWire(b []byte) error {
	*m = StatResponse{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.Stat = new(Stat)
			f.asMessage(m.Stat)
		case 2:
			m.Error = f.asErrno()
		}
	})
}

type MkNodRequest struct {
	Path string
	Mode Mode
	Dev  int32
}

func (m *MkNodRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Path)
	b = appendVarint(b, 2, uint64(m.Mode))
	return appendInt32(b, 3, m.Dev)
}

func (m *MkNodRequest) UnmarshalWire(b []byte) error {
	*m = MkNodRequest{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.Path = f.asString()
		case 2:
			m.Mode = f.asMode()
		case 3:
			m.Dev = f.asInt32()
		}
	})
}

type MkNodResponse struct {
	Error Errno
}

func (m *MkNodResponse) AppendWire(b []byte) []byte { return appendInt32(b, 1, int32(m.Error)) }

func (m *MkNodResponse) UnmarshalWire(b []byte) error {
	*m = MkNodResponse{}
	return walk(b, func(f field) {
		if f.num == 1 {
			m.Error = f.asErrno()
		}
	})
}

type MkDirRequest struct {
	Path string
	Mode Mode
}

func (m *MkDirRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Path)
	return appendVarint(b, 2, uint64(m.Mode))
}

func (m *MkDirRequest) UnmarshalWire(b []byte) error {
	*m = MkDirRequest{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.Path = f.asString()
		case 2:
			m.Mode = f.asMode()
		}
	})
}

type MkDirResponse struct {
	Error Errno
}

func (m *MkDirResponse) AppendWire(b []byte) []byte { return appendInt32(b, 1, int32(m.Error)) }

func (m *MkDirResponse) UnmarshalWire(b []byte) error {
	*m = MkDirResponse{}
	return walk(b, func(f field) {
		if f.num == 1 {
			m.Error = f.asErrno()
		}
	})
}

type ChModRequest struct {
	Path string
	Mode Mode
}

func (m *ChModRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Path)
	return appendVarint(b, 2, uint64(m.Mode))
}

func (m *ChModRequest) UnmarshalWire(b []byte) error {
	*m = ChModRequest{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.Path = f.asString()
		case 2:
			m.Mode = f.asMode()
		}
	})
}

type ChModResponse struct {
	Error Errno
}

func (m *ChModResponse) AppendWire(b []byte) []byte { return appendInt32(b, 1, int32(m.Error)) }

func (m *ChModResponse) UnmarshalWire(b []byte) error {
	*m = ChModResponse{}
	return walk(b, func(f field) {
		if f.num == 1 {
			m.Error = f.asErrno()
		}
	})
}

type ChOwnRequest struct {
	Path string
	Uid  uint32
	Gid  uint32
}

func (m *ChOwnRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Path)
	b = appendVarint(b, 2, uint64(m.Uid))
	return appendVarint(b, 3, uint64(m.Gid))
}

func (m *ChOwnRequest) UnmarshalWire(b []byte) error {
	*m = ChOwnRequest{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.Path = f.asString()
		case 2:
			m.Uid = f.asUint32()
		case 3:
			m.Gid = f.asUint32()
		}
	})
}

type ChOwnResponse struct {
	Error Errno
}

func (m *ChOwnResponse) AppendWire(b []byte) []byte { return appendInt32(b, 1, int32(m.Error)) }

func (m *ChOwnResponse) UnmarshalWire(b []byte) error {
	*m = ChOwnResponse{}
	return walk(b, func(f field) {
		if f.num == 1 {
			m.Error = f.asErrno()
		}
	})
}

type OpenRequest struct {
	Path  string
	Flags int32
}

func (m *OpenRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Path)
	return appendInt32(b, 2, m.Flags)
}

func (m *OpenRequest) UnmarshalWire(b []byte) error {
	*m = OpenRequest{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.Path = f.asString()
		case 2:
			m.Flags = f.asInt32()
		}
	})
}

type OpenResponse struct {
	Fh    uint64
	Error Errno
}

func (m *OpenResponse) AppendWire(b []byte) []byte {
	b = appendVarint(b, 1, m.Fh)
	return appendInt32(b, 2, int32(m.Error))
}

func (m *OpenResponse) UnmarshalWire(b []byte) error {
	*m = OpenResponse{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.Fh = f.asUint64()
		case 2:
			m.Error = f.asErrno()
		}
	})
}

type ReadRequest struct {
	Path   string
	Size   uint32
	Offset int64
	Fh     uint64
}

func (m *ReadRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Path)
	b = appendVarint(b, 2, uint64(m.Size))
	b = appendInt64(b, 3, m.Offset)
	return appendVarint(b, 4, m.Fh)
}

func (m *ReadRequest) UnmarshalWire(b []byte) error {
	*m = ReadRequest{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.Path = f.asString()
		case 2:
			m.Size = f.asUint32()
		case 3:
			m.Offset = f.asInt64()
		case 4:
			m.Fh = f.asUint64()
		}
	})
}

type ReadResponse struct {
	Buf   []byte
	N     uint32
	Eof   bool
	Error Errno
}

func (m *ReadResponse) AppendWire(b []byte) []byte {
	b = appendBytes(b, 1, m.Buf)
	b = appendVarint(b, 2, uint64(m.N))
	b = appendBool(b, 3, m.Eof)
	return appendInt32(b, 4, int32(m.Error))
}

func (m *ReadResponse) UnmarshalWire(b []byte) error {
	*m = ReadResponse{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.Buf = f.asBytes()
		case 2:
			m.N = f.asUint32()
		case 3:
			m.Eof = f.asBool()
		case 4:
			m.Error = f.asErrno()
		}
	})
}

type WriteRequest struct {
	Path   string
	Buf    []byte
	Size   uint32
	Offset int64
	Fh     uint64
}

func (m *WriteRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Path)
	b = appendBytes(b, 2, m.Buf)
	b = appendVarint(b, 3, uint64(m.Size))
	b = appendInt64(b, 4, m.Offset)
	return appendVarint(b, 5, m.Fh)
}

func (m *WriteRequest) UnmarshalWire(b []byte) error {
	*m = WriteRequest{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.Path = f.asString()
		case 2:
			m.Buf = f.asBytes()
		case 3:
			m.Size = f.asUint32()
		case 4:
			m.Offset = f.asInt64()
		case 5:
			m.Fh = f.asUint64()
		}
	})
}

type WriteResponse struct {
	N     uint32
	Error Errno
}

func (m *WriteResponse) AppendWire(b []byte) []byte {
	b = appendVarint(b, 1, uint64(m.N))
	return appendInt32(b, 2, int32(m.Error))
}

func (m *WriteResponse) UnmarshalWire(b []byte) error {
	*m = WriteResponse{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.N = f.asUint32()
		case 2:
			m.Error = f.asErrno()
		}
	})
}

type ReadDirRequest struct {
	Path string
}

func (m *ReadDirRequest) AppendWire(b []byte) []byte { return appendString(b, 1, m.Path) }

func (m *ReadDirRequest) UnmarshalWire(b []byte) error {
	*m = ReadDirRequest{}
	return walk(b, func(f field) {
		if f.num == 1 {
			m.Path = f.asString()
		}
	})
}

// Dir is one directory entry. Only the name is carried.
type Dir struct {
	Name string
}

func (m *Dir) AppendWire(b []byte) []byte { return appendString(b, 1, m.Name) }

func (m *Dir) UnmarshalWire(b []byte) error {
	*m = Dir{}
	return walk(b, func(f field) {
		if f.num == 1 {
			m.Name = f.asString()
		}
	})
}

type ReadDirResponse struct {
	Dirs  []Dir
	Error Errno
}

func (m *ReadDirResponse) AppendWire(b []byte) []byte {
	for i := range m.Dirs {
		b = appendMessage(b, 1, &m.Dirs[i])
	}
	return appendInt32(b, 2, int32(m.Error))
}

func (m *ReadDirResponse) UnmarshalWire(b []byte) error {
	*m = ReadDirResponse{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			var d Dir
			f.asMessage(&d)
			m.Dirs = append(m.Dirs, d)
		case 2:
			m.Error = f.asErrno()
		}
	})
}

type CreateRequest struct {
	Path  string
	Mode  Mode
	Flags int32
}

func (m *CreateRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Path)
	b = appendVarint(b, 2, uint64(m.Mode))
	return appendInt32(b, 3, m.Flags)
}

func (m *CreateRequest) UnmarshalWire(b []byte) error {
	*m = CreateRequest{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.Path = f.asString()
		case 2:
			m.Mode = f.asMode()
		case 3:
			m.Flags = f.asInt32()
		}
	})
}

type CreateResponse struct {
	Fh    uint64
	Error Errno
}

func (m *CreateResponse) AppendWire(b []byte) []byte {
	b = appendVarint(b, 1, m.Fh)
	return appendInt32(b, 2, int32(m.Error))
}

func (m *CreateResponse) UnmarshalWire(b []byte) error {
	*m = CreateResponse{}
	return walk(b, func(f field) {
		switch f.num {
		case 1:
			m.Fh = f.asUint64()
		case 2:
			m.Error = f.asErrno()
		}
	})
}

// Volume names a filesystem namespace on the service.
type Volume struct {
	Name string
}

func (m *Volume) AppendWire(b []byte) []byte { return appendString(b, 1, m.Name) }

func (m *Volume) UnmarshalWire(b []byte) error {
	*m = Volume{}
	return walk(b, func(f field) {
		if f.num == 1 {
			m.Name = f.asString()
		}
	})
}

type CreateVolumeRequest struct {
	Volume *Volume
}

func (m *CreateVolumeRequest) AppendWire(b []byte) []byte {
	if m.Volume != nil {
		b = appendMessage(b, 1, m.Volume)
	}
	return b
}

func (m *CreateVolumeRequest) UnmarshalWire(b []byte) error {
	*m = CreateVolumeRequest{}
	return walk(b, func(f field) {
		if f.num == 1 {
			m.Volume = new(Volume)
			f.asMessage(m.Volume)
		}
	})
}

type CreateVolumeResponse struct {
	Volume *Volume
}

func (m *CreateVolumeResponse) AppendWire(b []byte) []byte {
	if m.Volume != nil {
		b = appendMessage(b, 1, m.Volume)
	}
	return b
}

func (m *CreateVolumeResponse) UnmarshalWire(b []byte) error {
	*m = CreateVolumeResponse{}
	return walk(b, func(f field) {
		if f.num == 1 {
			m.Volume = new(Volume)
			f.asMessage(m.Volume)
		}
	})
}
