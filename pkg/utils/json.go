package utils

import (
	"bytes"
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func PrettyJson(in any) string {
	var buffer []byte
	var err error

	if reflect.TypeOf(in) != reflect.TypeOf([]byte{}) {
		buffer, err = json.Marshal(in)
		if err != nil {
			fmt.Println(err)
		}
	} else {
		buffer = in.([]byte)
	}

	var v any
	if err := json.Unmarshal(buffer, &v); err != nil {
		fmt.Println(err)
		return string(buffer)
	}

	out, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		fmt.Println(err)
		return string(buffer)
	}

	return string(out)
}

func Indent(in []byte) (*bytes.Buffer, error) {
	var v any
	if err := json.Unmarshal(in, &v); err != nil {
		return nil, err
	}

	out, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return nil, err
	}

	return bytes.NewBuffer(out), nil
}
