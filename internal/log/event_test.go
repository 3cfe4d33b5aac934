// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
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

package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

func TestLogEventTestSuite(t *testing.T) {
	suite.Run(t, new(LogEventTestSuite))
}

type LogEventTestSuite struct {
	baseLogTestSuite
}

func (s *LogEventTestSuite) TestTrace() {
	Trace().Msg("TestTrace")
	s.assertMsg("{\"level\":\"trace\",\"message\":\"TestTrace\"}\n")
}

func (s *LogEventTestSuite) TestTraceContext() {
	TraceContext(WithCommand(context.TODO(), "c1")).Msg("TestTraceContext")
	s.assertMsg("{\"level\":\"trace\",\"command\":\"c1\",\"message\":\"TestTraceContext\"}\n")
}

func (s *LogEventTestSuite) TestDebug() {
	Debug().Msg("TestDebug")
	s.assertMsg("{\"level\":\"debug\",\"message\":\"TestDebug\"}\n")
}

func (s *LogEventTestSuite) TestDebugContext() {
	DebugContext(WithCommand(context.TODO(), "c2")).Msg("TestDebugContext")
	s.assertMsg("{\"level\":\"debug\",\"command\":\"c2\",\"message\":\"TestDebugContext\"}\n")
}

func (s *LogEventTestSuite) TestInfo() {
	Info().Msg("TestInfo")
	s.assertMsg("{\"level\":\"info\",\"message\":\"TestInfo\"}\n")
}

func (s *LogEventTestSuite) TestInfoContext() {
	InfoContext(WithCommand(context.TODO(), "c3")).Msg("TestInfoContext")
	s.assertMsg("{\"level\":\"info\",\"command\":\"c3\",\"message\":\"TestInfoContext\"}\n")
}

func (s *LogEventTestSuite) TestWarn() {
	Warn().Msg("TestWarn")
	s.assertMsg("{\"level\":\"warn\",\"message\":\"TestWarn\"}\n")
}

func (s *LogEventTestSuite) TestWarnContext() {
	WarnContext(WithCommand(context.TODO(), "c4")).Msg("TestWarnContext")
	s.assertMsg("{\"level\":\"warn\",\"command\":\"c4\",\"message\":\"TestWarnContext\"}\n")
}

func (s *LogEventTestSuite) TestError() {
	Error().Msg("TestError")
	s.assertMsg("{\"level\":\"error\",\"message\":\"TestError\"}\n")
}

func (s *LogEventTestSuite) TestErrorContext() {
	ErrorContext(WithCommand(context.TODO(), "c5")).Msg("TestErrorContext")
	s.assertMsg("{\"level\":\"error\",\"command\":\"c5\",\"message\":\"TestErrorContext\"}\n")
}

func (s *LogEventTestSuite) TestSetLevel() {
	s.Require().NoError(SetLevel("warn"))

	Info().Msg("TestSetLevel-hidden")
	Warn().Msg("TestSetLevel")
	s.assertMsg("{\"level\":\"warn\",\"message\":\"TestSetLevel\"}\n")
}

func (s *LogEventTestSuite) TestSetLevelInvalid() {
	s.Assert().Error(SetLevel("loud"))
}
