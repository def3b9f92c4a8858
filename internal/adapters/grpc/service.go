package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const planningServiceName = "voyageplanner.v1.PlanningService"

const (
	methodScheduleVoyage   = "/" + planningServiceName + "/ScheduleVoyage"
	methodRecalculateTimes = "/" + planningServiceName + "/RecalculateTimes"
	methodGetVoyagePlan    = "/" + planningServiceName + "/GetVoyagePlan"
)

// PlanningServiceServer is the server side of the planning service.
// Messages are google.protobuf.Struct values shaped by the json tags of
// the request and view types in this package.
type PlanningServiceServer interface {
	ScheduleVoyage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecalculateTimes(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetVoyagePlan(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(PlanningServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(call unaryMethod, fullMethod string) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PlanningServiceServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(PlanningServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var planningServiceDesc = grpc.ServiceDesc{
	ServiceName: planningServiceName,
	HandlerType: (*PlanningServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ScheduleVoyage", Handler: unaryHandler(PlanningServiceServer.ScheduleVoyage, methodScheduleVoyage)},
		{MethodName: "RecalculateTimes", Handler: unaryHandler(PlanningServiceServer.RecalculateTimes, methodRecalculateTimes)},
		{MethodName: "GetVoyagePlan", Handler: unaryHandler(PlanningServiceServer.GetVoyagePlan, methodGetVoyagePlan)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "voyageplanner/v1/planning.proto",
}

// RegisterPlanningServiceServer attaches srv to s
func RegisterPlanningServiceServer(s grpc.ServiceRegistrar, srv PlanningServiceServer) {
	s.RegisterService(&planningServiceDesc, srv)
}

// ScheduleRequest is the payload of ScheduleVoyage, RecalculateTimes and
// GetVoyagePlan; Force is only read by ScheduleVoyage
type ScheduleRequest struct {
	VoyageID int64 `json:"voyage_id"`
	Force    bool  `json:"force,omitempty"`
}
