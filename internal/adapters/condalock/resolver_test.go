package condalock

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/rse-lectures/lockstep/internal/core/domain"
	"github.com/rse-lectures/lockstep/internal/core/ports/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const fixtureLockfile = `version: 1
metadata:
  platforms:
    - linux-64
    - osx-arm64
package:
  - name: python
    version: 3.12.4
    manager: conda
    platform: linux-64
    url: https://conda.anaconda.org/conda-forge/linux-64/python-3.12.4.conda
    category: main
    hash:
      md5: aaa111
      sha256: bbb222
  - name: numpy
    version: 2.0.1
    manager: conda
    platform: linux-64
    url: https://conda.anaconda.org/conda-forge/linux-64/numpy-2.0.1.conda
    category: main
    hash:
      md5: ccc333
      sha256: ddd444
  - name: numpy
    version: 2.0.1
    manager: conda
    platform: osx-arm64
    url: https://conda.anaconda.org/conda-forge/osx-arm64/numpy-2.0.1.conda
    category: main
    hash:
      md5: eee555
      sha256: fff666
`

func testDescriptor() *domain.Descriptor {
	parent := &domain.Descriptor{
		Name:       "base",
		Path:       "environment.yml",
		LockPrefix: "environment",
	}
	return &domain.Descriptor{
		Name:       "lecture_01",
		Path:       "lecture_01/environment.yml",
		LockPrefix: "lecture_01/environment",
		Parent:     parent,
	}
}

func TestResolveParsesSolverOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockToolRunner(ctrl)

	var lockPath string
	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command) (domain.CommandOutput, error) {
			require.Equal(t, "conda-lock", cmd.Program)
			require.Equal(t, "lock", cmd.Args[0])
			// File chain is parent-first.
			require.Equal(t, []string{"--file", "environment.yml", "--file", "lecture_01/environment.yml"}, cmd.Args[1:5])
			require.Contains(t, cmd.Args, "--platform")
			require.Contains(t, cmd.Args, "linux-64")
			lockPath = cmd.Args[len(cmd.Args)-1]
			require.NoError(t, os.WriteFile(lockPath, []byte(fixtureLockfile), 0o600))
			return domain.CommandOutput{}, nil
		})
	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command) (domain.CommandOutput, error) {
			require.Equal(t, []string{"--version"}, cmd.Args)
			return domain.CommandOutput{Stdout: "conda-lock, version 2.5.7\n"}, nil
		})

	r := NewResolver(runner, nopLogger{}, ".", time.Minute)
	artifact, err := r.Resolve(context.Background(), testDescriptor(), domain.PlatformLinux64)
	require.NoError(t, err)

	require.Equal(t, "lecture_01", artifact.Descriptor)
	require.Equal(t, domain.PlatformLinux64, artifact.Platform)
	require.Equal(t, "2.5.7", artifact.SolverVersion)
	require.False(t, artifact.GeneratedAt.IsZero())
	require.Len(t, artifact.Packages, 2)
	require.Equal(t, "python", artifact.Packages[0].Name)
	require.Equal(t, "bbb222", artifact.Packages[0].SHA256)
	require.Equal(t, []byte(fixtureLockfile), artifact.Raw)
	require.Equal(t, "lecture_01/environment-linux-64.lock", artifact.Filename())
}

func TestResolveSolverFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockToolRunner(ctrl)
	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		Return(domain.CommandOutput{Stderr: "UnsatisfiableError: numpy ==9.9.9", ExitCode: 1},
			errors.New("exit status 1"))

	r := NewResolver(runner, nopLogger{}, ".", time.Minute)
	_, err := r.Resolve(context.Background(), testDescriptor(), domain.PlatformLinux64)
	require.ErrorIs(t, err, domain.ErrResolutionFailed)
	require.Contains(t, err.Error(), "constraint set")
}

func TestResolveToolMissingPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockToolRunner(ctrl)
	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		Return(domain.CommandOutput{}, domain.ErrToolMissing)

	r := NewResolver(runner, nopLogger{}, ".", time.Minute)
	_, err := r.Resolve(context.Background(), testDescriptor(), domain.PlatformOSX64)
	require.ErrorIs(t, err, domain.ErrToolMissing)
	require.NotErrorIs(t, err, domain.ErrResolutionFailed)
}

func TestResolveSolverVersionCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockToolRunner(ctrl)

	solve := func(_ context.Context, cmd domain.Command) (domain.CommandOutput, error) {
		require.NoError(t, os.WriteFile(cmd.Args[len(cmd.Args)-1], []byte(fixtureLockfile), 0o600))
		return domain.CommandOutput{}, nil
	}
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(solve)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(domain.CommandOutput{Stdout: "conda-lock, version 2.5.7\n"}, nil)
	// Second Resolve must not query the version again.
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(solve)

	r := NewResolver(runner, nopLogger{}, ".", time.Minute)
	a1, err := r.Resolve(context.Background(), testDescriptor(), domain.PlatformLinux64)
	require.NoError(t, err)
	a2, err := r.Resolve(context.Background(), testDescriptor(), domain.PlatformLinux64)
	require.NoError(t, err)
	require.Equal(t, a1.SolverVersion, a2.SolverVersion)
}

func TestParseRejectsUnknownSchema(t *testing.T) {
	_, err := Parse([]byte("package: []\n"), domain.PlatformLinux64)
	require.Error(t, err)
	require.Contains(t, err.Error(), "schema version")
}

func TestParseRejectsEmptyPlatformSlice(t *testing.T) {
	_, err := Parse([]byte(fixtureLockfile), domain.PlatformWin64)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no packages")
}

type nopLogger struct{}

func (nopLogger) Info(msg string) {}
func (nopLogger) Warn(msg string) {}
func (nopLogger) Error(err error) {}
