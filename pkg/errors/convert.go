package errors

import (
	"context"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CodePair maps an error code onto HTTP and gRPC
type CodePair struct {
	HTTPStatus int
	GRPCCode   codes.Code
}

var codeMapping = map[string]CodePair{
	ErrInternal:        {http.StatusInternalServerError, codes.Internal},
	ErrNotFound:        {http.StatusNotFound, codes.NotFound},
	ErrInvalidArgument: {http.StatusBadRequest, codes.InvalidArgument},
	ErrUnauthenticated: {http.StatusUnauthorized, codes.Unauthenticated},
	ErrUnauthorized:    {http.StatusForbidden, codes.PermissionDenied},
	ErrConflict:        {http.StatusConflict, codes.FailedPrecondition},
	ErrTimeout:         {http.StatusGatewayTimeout, codes.DeadlineExceeded},
}

// GetCodeMapping returns the HTTP status and gRPC code for an error code.
// Unknown codes map to internal.
func GetCodeMapping(code string) (int, codes.Code) {
	if pair, ok := codeMapping[code]; ok {
		return pair.HTTPStatus, pair.GRPCCode
	}
	return http.StatusInternalServerError, codes.Internal
}

// ToGRPCError converts err into a gRPC status error. Internal details are
// never sent to the client.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		_, code := GetCodeMapping(appErr.Code())
		if code == codes.Internal {
			return status.Error(code, http.StatusText(http.StatusInternalServerError))
		}
		return status.Error(code, appErr.Message())
	}

	if s, ok := status.FromError(err); ok {
		return s.Err()
	}
	return status.Error(codes.Internal, http.StatusText(http.StatusInternalServerError))
}

// UnaryServerInterceptor converts handler errors with ToGRPCError
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		return resp, ToGRPCError(err)
	}
}
