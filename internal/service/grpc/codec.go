package grpcsvc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/transport/dto"
)

// decodeStruct переводит Struct в JSON и разбирает его тем же кодом, что и HTTP-тела.
func decodeStruct(in *structpb.Struct, dst any) error {
	if in == nil {
		in = &structpb.Struct{}
	}
	raw, err := protojson.Marshal(in)
	if err != nil {
		return domain.NewValidationError("request", "cannot be encoded: "+err.Error())
	}
	return dto.DecodeBytes(raw, dst)
}

// encodeStruct сериализует ответ в JSON и собирает из него Struct.
func encodeStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("build response struct: %w", err)
	}
	return out, nil
}

// decodeID достаёт обязательный идентификатор из запроса.
func decodeID(in *structpb.Struct) (string, error) {
	var req dto.IDRequest
	if err := decodeStruct(in, &req); err != nil {
		return "", err
	}
	if req.ID == "" {
		return "", domain.NewValidationError("id", "is required")
	}
	return req.ID, nil
}
