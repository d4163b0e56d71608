// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2022 Mistcoin Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/mistcoin/mistd/fault"
)

// ParseConfigurationFile - execute a Lua file and assign the table it
// returns to a configuration structure
//
// the script sees its own file name as arg[0] so relative includes
// and data files can be located
func ParseConfigurationFile(fileName string, config interface{}) error {
	state := lua.NewState()
	defer state.Close()

	state.OpenLibs()

	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(fileName))
	state.SetGlobal("arg", arg)

	if err := state.DoFile(fileName); nil != err {
		return err
	}

	returned, ok := state.Get(state.GetTop()).(*lua.LTable)
	if !ok {
		return fault.ErrInvalidConfiguration
	}

	mapper := gluamapper.Mapper{
		Option: gluamapper.Option{
			NameFunc: func(name string) string {
				return name
			},
			TagName: "gluamapper",
		},
	}
	return mapper.Map(returned, config)
}
