// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package host

import (
	"github.com/orbs-network/orbs-load-tester/services/host/types"
	"github.com/pkg/errors"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// errInvalidInput marks errors caused by the caller's arguments rather than by contract execution
type errInvalidInput struct {
	error
}

func invalidInputf(format string, args ...interface{}) error {
	return &errInvalidInput{errors.Errorf(format, args...)}
}

func isInvalidInput(err error) bool {
	_, ok := errors.Cause(err).(*errInvalidInput)
	return ok
}

func processMethodCall(executionContextId types.Context, contractInstance types.Contract, methodInfo types.MethodInfo, args []interface{}) (outputArgs []interface{}, contractErr error, err error) {
	defer func() {
		if r := recover(); r != nil {
			outputArgs = nil
			contractErr = errors.Errorf("%s", r)
		}
	}()

	functionNameForErrors := string(methodInfo.Name)

	inValues, err := prepareMethodInputArgsForCall(executionContextId, contractInstance, methodInfo.Implementation, args, functionNameForErrors)
	if err != nil {
		return nil, nil, err
	}

	outValues := reflect.ValueOf(methodInfo.Implementation).Call(inValues)

	return createMethodOutputArgs(outValues, functionNameForErrors)
}

func prepareMethodInputArgsForCall(executionContextId types.Context, contractInstance types.Contract, methodInstance interface{}, args []interface{}, functionNameForErrors string) ([]reflect.Value, error) {
	methodType := reflect.ValueOf(methodInstance).Type()
	if methodType.Kind() != reflect.Func || methodType.NumIn() < 2 {
		return nil, errors.Errorf("method '%s' is not a contract method", functionNameForErrors)
	}

	res := []reflect.Value{reflect.ValueOf(contractInstance), reflect.ValueOf(executionContextId)}

	const fixedArgs = 2
	expected := methodType.NumIn() - fixedArgs
	if len(args) != expected {
		return nil, invalidInputf("method '%s' takes %d args but received %d", functionNameForErrors, expected, len(args))
	}

	for i, arg := range args {
		paramType := methodType.In(i + fixedArgs)
		switch paramType.Kind() {
		case reflect.Uint32:
			if _, ok := arg.(uint32); !ok {
				return nil, invalidInputf("method '%s' expects arg %d to be uint32 but it has %T", functionNameForErrors, i, arg)
			}
		case reflect.Uint64:
			if _, ok := arg.(uint64); !ok {
				return nil, invalidInputf("method '%s' expects arg %d to be uint64 but it has %T", functionNameForErrors, i, arg)
			}
		case reflect.String:
			if _, ok := arg.(string); !ok {
				return nil, invalidInputf("method '%s' expects arg %d to be string but it has %T", functionNameForErrors, i, arg)
			}
		case reflect.Slice:
			if paramType.Elem().Kind() != reflect.Uint8 {
				return nil, errors.Errorf("method '%s' arg %d slice type is not byte", functionNameForErrors, i)
			}
			if _, ok := arg.([]byte); !ok {
				return nil, invalidInputf("method '%s' expects arg %d to be bytes but it has %T", functionNameForErrors, i, arg)
			}
		default:
			return nil, errors.Errorf("method '%s' arg %d is of unsupported type %s", functionNameForErrors, i, paramType)
		}
		res = append(res, reflect.ValueOf(arg))
	}

	return res, nil
}

func createMethodOutputArgs(outValues []reflect.Value, functionNameForErrors string) ([]interface{}, error, error) {
	if len(outValues) == 0 || !outValues[len(outValues)-1].Type().Implements(errorType) {
		return nil, nil, errors.Errorf("method '%s' does not return an error as its last result", functionNameForErrors)
	}

	var contractErr error
	if errValue := outValues[len(outValues)-1]; !errValue.IsNil() {
		contractErr = errValue.Interface().(error)
	}

	res := []interface{}{}
	for i, arg := range outValues[:len(outValues)-1] {
		switch arg.Kind() {
		case reflect.Uint32, reflect.Uint64, reflect.String:
			res = append(res, arg.Interface())
		case reflect.Slice:
			switch arg.Type().Elem().Kind() {
			case reflect.Uint8, reflect.Uint64:
				res = append(res, arg.Interface())
			default:
				return nil, nil, errors.Errorf("method '%s' output arg %d slice type is not byte or uint64", functionNameForErrors, i)
			}
		default:
			return nil, nil, errors.Errorf("method '%s' output arg %d is of unsupported type", functionNameForErrors, i)
		}
	}

	return res, contractErr, nil
}
