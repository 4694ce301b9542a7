package wire

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	PosixIoServiceName = "paciofs.io.posix.grpc.PosixIoService"
	PacioFsServiceName = "paciofs.grpc.PacioFsService"
)

const (
	PosixIoService_Ping_FullMethodName    = "/" + PosixIoServiceName + "/Ping"
	PosixIoService_Stat_FullMethodName    = "/" + PosixIoServiceName + "/Stat"
	PosixIoService_MkNod_FullMethodName   = "/" + PosixIoServiceName + "/MkNod"
	PosixIoService_MkDir_FullMethodName   = "/" + PosixIoServiceName + "/MkDir"
	PosixIoService_ChMod_FullMethodName   = "/" + PosixIoServiceName + "/ChMod"
	PosixIoService_ChOwn_FullMethodName   = "/" + PosixIoServiceName + "/ChOwn"
	PosixIoService_Open_FullMethodName    = "/" + PosixIoServiceName + "/Open"
	PosixIoService_Read_FullMethodName    = "/" + PosixIoServiceName + "/Read"
	PosixIoService_Write_FullMethodName   = "/" + PosixIoServiceName + "/Write"
	PosixIoService_ReadDir_FullMethodName = "/" + PosixIoServiceName + "/ReadDir"
	PosixIoService_Create_FullMethodName  = "/" + PosixIoServiceName + "/Create"

	PacioFsService_Ping_FullMethodName         = "/" + PacioFsServiceName + "/Ping"
	PacioFsService_CreateVolume_FullMethodName = "/" + PacioFsServiceName + "/CreateVolume"
)

// PosixIoServiceClient is the client API for the POSIX I/O service.
type PosixIoServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Stat(ctx context.Context, in *StatRequest, opts ...grpc.CallOption) (*StatResponse, error)
	MkNod(ctx context.Context, in *MkNodRequest, opts ...grpc.CallOption) (*MkNodResponse, error)
	MkDir(ctx context.Context, in *MkDirRequest, opts ...grpc.CallOption) (*MkDirResponse, error)
	ChMod(ctx context.Context, in *ChModRequest, opts ...grpc.CallOption) (*ChModResponse, error)
	ChOwn(ctx context.Context, in *ChOwnRequest, opts ...grpc.CallOption) (*ChOwnResponse, error)
	Open(ctx context.Context, in *OpenRequest, opts ...grpc.CallOption) (*OpenResponse, error)
	Read(ctx context.Context, in *ReadRequest, opts ...grpc.CallOption) (*ReadResponse, error)
	Write(ctx context.Context, in *WriteRequest, opts ...grpc.CallOption) (*WriteResponse, error)
	ReadDir(ctx context.Context, in *ReadDirRequest, opts ...grpc.CallOption) (*ReadDirResponse, error)
	Create(ctx context.Context, in *CreateRequest, opts ...grpc.CallOption) (*CreateResponse, error)
}

type posixIoServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPosixIoServiceClient(cc grpc.ClientConnInterface) PosixIoServiceClient {
	return &posixIoServiceClient{cc}
}

func (c *posixIoServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.cc.Invoke(ctx, PosixIoService_Ping_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posixIoServiceClient) Stat(ctx context.Context, in *StatRequest, opts ...grpc.CallOption) (*StatResponse, error) {
	out := new(StatResponse)
	if err := c.cc.Invoke(ctx, PosixIoService_Stat_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posixIoServiceClient) MkNod(ctx context.Context, in *MkNodRequest, opts ...grpc.CallOption) (*MkNodResponse, error) {
	out := new(MkNodResponse)
	if err := c.cc.Invoke(ctx, PosixIoService_MkNod_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posixIoServiceClient) MkDir(ctx context.Context, in *MkDirRequest, opts ...grpc.CallOption) (*MkDirResponse, error) {
	out := new(MkDirResponse)
	if err := c.cc.Invoke(ctx, PosixIoService_MkDir_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posixIoServiceClient) ChMod(ctx context.Context, in *ChModRequest, opts ...grpc.CallOption) (*ChModResponse, error) {
	out := new(ChModResponse)
	if err := c.cc.Invoke(ctx, PosixIoService_ChMod_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posixIoServiceClient) ChOwn(ctx context.Context, in *ChOwnRequest, opts ...grpc.CallOption) (*ChOwnResponse, error) {
	out := new(ChOwnResponse)
	if err := c.cc.Invoke(ctx, PosixIoService_ChOwn_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posixIoServiceClient) Open(ctx context.Context, in *OpenRequest, opts ...grpc.CallOption) (*OpenResponse, error) {
	out := new(OpenResponse)
	if err := c.cc.Invoke(ctx, PosixIoService_Open_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posixIoServiceClient) Read(ctx context.Context, in *ReadRequest, opts ...grpc.CallOption) (*ReadResponse, error) {
	out := new(ReadResponse)
	if err := c.cc.Invoke(ctx, PosixIoService_Read_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posixIoServiceClient) Write(ctx context.Context, in *WriteRequest, opts ...grpc.CallOption) (*WriteResponse, error) {
	out := new(WriteResponse)
	if err := c.cc.Invoke(ctx, PosixIoService_Write_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posixIoServiceClient) ReadDir(ctx context.Context, in *ReadDirRequest, opts ...grpc.CallOption) (*ReadDirResponse, error) {
	out := new(ReadDirResponse)
	if err := c.cc.Invoke(ctx, PosixIoService_ReadDir_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *posixIoServiceClient) Create(ctx context.Context, in *CreateRequest, opts ...grpc.CallOption) (*CreateResponse, error) {
	out := new(CreateResponse)
	if err := c.cc.Invoke(ctx, PosixIoService_Create_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// PosixIoServiceServer is the server API for the POSIX I/O service. The
// client never needs it; it exists for in-process test servers and tools.
type PosixIoServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Stat(context.Context, *StatRequest) (*StatResponse, error)
	MkNod(context.Context, *MkNodRequest) (*MkNodResponse, error)
	MkDir(context.Context, *MkDirRequest) (*MkDirResponse, error)
	ChMod(context.Context, *ChModRequest) (*ChModResponse, error)
	ChOwn(context.Context, *ChOwnRequest) (*ChOwnResponse, error)
	Open(context.Context, *OpenRequest) (*OpenResponse, error)
	Read(context.Context, *ReadRequest) (*ReadResponse, error)
	Write(context.Context, *WriteRequest) (*WriteResponse, error)
	ReadDir(context.Context, *ReadDirRequest) (*ReadDirResponse, error)
	Create(context.Context, *CreateRequest) (*CreateResponse, error)
}

// UnimplementedPosixIoServiceServer can be embedded to get forward
// compatible implementations.
type UnimplementedPosixIoServiceServer struct{}

func (UnimplementedPosixIoServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedPosixIoServiceServer) Stat(context.Context, *StatRequest) (*StatResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Stat not implemented")
}
func (UnimplementedPosixIoServiceServer) MkNod(context.Context, *MkNodRequest) (*MkNodResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MkNod not implemented")
}
func (UnimplementedPosixIoServiceServer) MkDir(context.Context, *MkDirRequest) (*MkDirResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MkDir not implemented")
}
func (UnimplementedPosixIoServiceServer) ChMod(context.Context, *ChModRequest) (*ChModResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChMod not implemented")
}
func (UnimplementedPosixIoServiceServer) ChOwn(context.Context, *ChOwnRequest) (*ChOwnResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChOwn not implemented")
}
func (UnimplementedPosixIoServiceServer) Open(context.Context, *OpenRequest) (*OpenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Open not implemented")
}
func (UnimplementedPosixIoServiceServer) Read(context.Context, *ReadRequest) (*ReadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Read not implemented")
}
func (UnimplementedPosixIoServiceServer) Write(context.Context, *WriteRequest) (*WriteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Write not implemented")
}
func (UnimplementedPosixIoServiceServer) ReadDir(context.Context, *ReadDirRequest) (*ReadDirResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReadDir not implemented")
}
func (UnimplementedPosixIoServiceServer) Create(context.Context, *CreateRequest) (*CreateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Create not implemented")
}

func RegisterPosixIoServiceServer(s grpc.ServiceRegistrar, srv PosixIoServiceServer) {
	s.RegisterService(&PosixIoService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[T any, PT interface {
	*T
	Message
}](fullMethod string, call func(srv interface{}, ctx context.Context, in PT) (interface{}, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := PT(new(T))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv, ctx, req.(PT))
		})
	}
}

var PosixIoService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: PosixIoServiceName,
	HandlerType: (*PosixIoServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(PosixIoService_Ping_FullMethodName,
			func(srv interface{}, ctx context.Context, in *PingRequest) (interface{}, error) {
				return srv.(PosixIoServiceServer).Ping(ctx, in)
			})},
		{MethodName: "Stat", Handler: unaryHandler(PosixIoService_Stat_FullMethodName,
			func(srv interface{}, ctx context.Context, in *StatRequest) (interface{}, error) {
				return srv.(PosixIoServiceServer).Stat(ctx, in)
			})},
		{MethodName: "MkNod", Handler: unaryHandler(PosixIoService_MkNod_FullMethodName,
			func(srv interface{}, ctx context.Context, in *MkNodRequest) (interface{}, error) {
				return srv.(PosixIoServiceServer).MkNod(ctx, in)
			})},
		{MethodName: "MkDir", Handler: unaryHandler(PosixIoService_MkDir_FullMethodName,
			func(srv interface{}, ctx context.Context, in *MkDirRequest) (interface{}, error) {
				return srv.(PosixIoServiceServer).MkDir(ctx, in)
			})},
		{MethodName: "ChMod", Handler: unaryHandler(PosixIoService_ChMod_FullMethodName,
			func(srv interface{}, ctx context.Context, in *ChModRequest) (interface{}, error) {
				return srv.(PosixIoServiceServer).ChMod(ctx, in)
			})},
		{MethodName: "ChOwn", Handler: unaryHandler(PosixIoService_ChOwn_FullMethodName,
			func(srv interface{}, ctx context.Context, in *ChOwnRequest) (interface{}, error) {
				return srv.(PosixIoServiceServer).ChOwn(ctx, in)
			})},
		{MethodName: "Open", Handler: unaryHandler(PosixIoService_Open_FullMethodName,
			func(srv interface{}, ctx context.Context, in *OpenRequest) (interface{}, error) {
				return srv.(PosixIoServiceServer).Open(ctx, in)
			})},
		{MethodName: "Read", Handler: unaryHandler(PosixIoService_Read_FullMethodName,
			func(srv interface{}, ctx context.Context, in *ReadRequest) (interface{}, error) {
				return srv.(PosixIoServiceServer).Read(ctx, in)
			})},
		{MethodName: "Write", Handler: unaryHandler(PosixIoService_Write_FullMethodName,
			func(srv interface{}, ctx context.Context, in *WriteRequest) (interface{}, error) {
				return srv.(PosixIoServiceServer).Write(ctx, in)
			})},
		{MethodName: "ReadDir", Handler: unaryHandler(PosixIoService_ReadDir_FullMethodName,
			func(srv interface{}, ctx context.Context, in *ReadDirRequest) (interface{}, error) {
				return srv.(PosixIoServiceServer).ReadDir(ctx, in)
			})},
		{MethodName: "Create", Handler: unaryHandler(PosixIoService_Create_FullMethodName,
			func(srv interface{}, ctx context.Context, in *CreateRequest) (interface{}, error) {
				return srv.(PosixIoServiceServer).Create(ctx, in)
			})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "paciofs/io/posix/grpc/posix_io_service.proto",
}

// PacioFsServiceClient is the client API for volume administration.
type PacioFsServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	CreateVolume(ctx context.Context, in *CreateVolumeRequest, opts ...grpc.CallOption) (*CreateVolumeResponse, error)
}

type pacioFsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPacioFsServiceClient(cc grpc.ClientConnInterface) PacioFsServiceClient {
	return &pacioFsServiceClient{cc}
}

func (c *pacioFsServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.cc.Invoke(ctx, PacioFsService_Ping_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *pacioFsServiceClient) CreateVolume(ctx context.Context, in *CreateVolumeRequest, opts ...grpc.CallOption) (*CreateVolumeResponse, error) {
	out := new(CreateVolumeResponse)
	if err := c.cc.Invoke(ctx, PacioFsService_CreateVolume_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type PacioFsServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	CreateVolume(context.Context, *CreateVolumeRequest) (*CreateVolumeResponse, error)
}

type UnimplementedPacioFsServiceServer struct{}

func (UnimplementedPacioFsServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedPacioFsServiceServer) CreateVolume(context.Context, *CreateVolumeRequest) (*CreateVolumeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateVolume not implemented")
}

func RegisterPacioFsServiceServer(s grpc.ServiceRegistrar, srv PacioFsServiceServer) {
	s.RegisterService(&PacioFsService_ServiceDesc, srv)
}

var PacioFsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: PacioFsServiceName,
	HandlerType: (*PacioFsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(PacioFsService_Ping_FullMethodName,
			func(srv interface{}, ctx context.Context, in *PingRequest) (interface{}, error) {
				return srv.(PacioFsServiceServer).Ping(ctx, in)
			})},
		{MethodName: "CreateVolume", Handler: unaryHandler(PacioFsService_CreateVolume_FullMethodName,
			func(srv interface{}, ctx context.Context, in *CreateVolumeRequest) (interface{}, error) {
				return srv.(PacioFsServiceServer).CreateVolume(ctx, in)
			})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "paciofs/grpc/paciofs_service.proto",
}
