package grpcsvc

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// FileDescriptor — описание ProtoFile, собранное из ServiceDesc и зарегистрированное
// в protoregistry.GlobalFiles. По нему gRPC reflection отвечает на describe-запросы.
var FileDescriptor = registerFileDescriptor()

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	structType := "." + string(structpb.File_google_protobuf_struct_proto.Messages().ByName("Struct").FullName())

	methods := make([]*descriptorpb.MethodDescriptorProto, 0, len(ServiceDesc.Methods))
	for _, m := range ServiceDesc.Methods {
		methods = append(methods, &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(m.MethodName),
			InputType:  proto.String(structType),
			OutputType: proto.String(structType),
		})
	}

	dot := strings.LastIndex(ServiceName, ".")
	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String(ProtoFile),
		Package:    proto.String(ServiceName[:dot]),
		Dependency: []string{structpb.File_google_protobuf_struct_proto.Path()},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name:   proto.String(ServiceName[dot+1:]),
			Method: methods,
		}},
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/vladislavdragonenkov/storefront/internal/service/grpc;grpcsvc"),
		},
		Syntax: proto.String("proto3"),
	}
}

func registerFileDescriptor() protoreflect.FileDescriptor {
	fd, err := protodesc.NewFile(fileDescriptorProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("build %s descriptor: %v", ProtoFile, err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("register %s descriptor: %v", ProtoFile, err))
	}
	return fd
}
