package jobs

import (
	"encoding/json"
	"fmt"
)

// EncodePayload marshals a typed payload after checking it matches the
// declared job type.
func EncodePayload(t JobType, payload any) ([]byte, error) {
	if !t.IsValid() {
		return nil, ErrInvalidJobType
	}

	switch t {
	case JobGradeNotification:
		if !isPayloadType[GradeNotificationPayload](payload) {
			return nil, ErrPayloadTypeMismatch
		}
	case JobWelcomeCredentials:
		if !isPayloadType[WelcomeCredentialsPayload](payload) {
			return nil, ErrPayloadTypeMismatch
		}
	case JobAdminMessage:
		if !isPayloadType[AdminMessagePayload](payload) {
			return nil, ErrPayloadTypeMismatch
		}
	case JobStudentMessage:
		if !isPayloadType[StudentMessagePayload](payload) {
			return nil, ErrPayloadTypeMismatch
		}
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
	}

	return b, nil
}

func isPayloadType[P any](payload any) bool {
	if _, ok := payload.(P); ok {
		return true
	}
	_, ok := payload.(*P)
	return ok
}

// DecodePayload unmarshals job.Payload into the correct typed payload struct.
func DecodePayload(j Job) (any, error) {
	if !j.Type.IsValid() {
		return nil, ErrInvalidJobType
	}
	if len(j.Payload) == 0 {
		return nil, ErrInvalidJobPayload
	}

	switch j.Type {
	case JobGradeNotification:
		var p GradeNotificationPayload
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
		}
		return p, nil

	case JobWelcomeCredentials:
		var p WelcomeCredentialsPayload
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
		}
		return p, nil

	case JobAdminMessage:
		var p AdminMessagePayload
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
		}
		return p, nil

	case JobStudentMessage:
		var p StudentMessagePayload
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
		}
		return p, nil

	default:
		return nil, ErrInvalidJobType
	}
}
