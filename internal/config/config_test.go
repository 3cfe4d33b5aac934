// Copyright (C) 2021  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
)

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

type ConfigTestSuite struct {
	suite.Suite

	fs afero.Fs
}

func (s *ConfigTestSuite) SetupTest() {
	s.fs = afero.NewMemMapFs()
}

func (s *ConfigTestSuite) TearDownTest() {
	s.write("/empty.conf", "{}")
	s.Require().NoError(Load(s.fs, "/empty.conf"))
	viper.SetFs(afero.NewOsFs())
}

func (s *ConfigTestSuite) write(filename, content string) {
	s.Require().NoError(afero.WriteFile(s.fs, filename, []byte(content), 0644))
}

func (s *ConfigTestSuite) TestLoad() {
	s.write("/etc/brieftaube.conf", `{"base": "dc=example,dc=org", "host": "ldap.example.org", "port": 636, "sep": ";"}`)

	s.Require().NoError(Load(s.fs, "/etc/brieftaube.conf"))
	s.Assert().Equal("dc=example,dc=org", viper.GetString("base"))
	s.Assert().Equal("ldap.example.org", viper.GetString("host"))
	s.Assert().EqualValues(636, viper.GetUint16("port"))
	s.Assert().Equal(";", Separator())
}

func (s *ConfigTestSuite) TestLoadNoFilename() {
	s.Assert().ErrorIs(Load(s.fs, ""), ErrConfig)
}

func (s *ConfigTestSuite) TestLoadMissingFile() {
	s.Assert().ErrorIs(Load(s.fs, "/etc/missing.conf"), ErrConfig)
}

func (s *ConfigTestSuite) TestLoadMalformed() {
	s.write("/etc/broken.conf", `{"base": `)

	s.Assert().ErrorIs(Load(s.fs, "/etc/broken.conf"), ErrConfig)
}

func (s *ConfigTestSuite) TestRequire() {
	s.write("/etc/brieftaube.conf", `{"base": "dc=example,dc=org"}`)
	s.Require().NoError(Load(s.fs, "/etc/brieftaube.conf"))

	s.Assert().NoError(Require("base", "sep"))

	err := Require("base", "host")
	s.Assert().ErrorIs(err, ErrConfig)
	s.Assert().Contains(err.Error(), "host")
	s.Assert().NotContains(err.Error(), "base")
}

func (s *ConfigTestSuite) TestSeparatorDefault() {
	s.Assert().Equal(",", Separator())
}
