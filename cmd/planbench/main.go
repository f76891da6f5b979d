// Command planbench runs one of the named concrete scenarios against a
// Planner and prints the resulting trajectory: stdlib flag parsing, a
// realMain that returns an error instead of exiting inline, and a logger
// whose verbosity the -v flag controls.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/geo/r3"

	"github.com/popov1212/apollo/hybridastar"
	"github.com/popov1212/apollo/logging"
	"github.com/popov1212/apollo/spatialmath"
)

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func realMain() error {
	scenario := flag.String("scenario", "straight-shot", "one of: straight-shot, reverse-parking, corridor, infeasible-goal")
	verbose := flag.Bool("v", false, "verbose")
	useQP := flag.Bool("qp", false, "use the piecewise-jerk QP speed profile instead of finite differencing")
	flag.Parse()

	logger := logging.NewLogger("planbench")
	if *verbose {
		logger.SetLevel(logging.DEBUG)
	}

	start, goal, bounds, obstacles, err := scenarioInputs(*scenario)
	if err != nil {
		return err
	}

	cfg := hybridastar.NewDefaultConfig()
	cfg.UseSCurveSpeedSmooth = *useQP

	planner := hybridastar.NewPlanner(cfg, logger)
	result, err := planner.Plan(start, goal, bounds, obstacles)
	if err != nil {
		return err
	}

	for i := 0; i < result.N(); i++ {
		logger.Infof("step %d: x=%.3f y=%.3f phi=%.3f v=%.3f", i, result.X[i], result.Y[i], result.Phi[i], result.V[i])
	}
	return nil
}

func scenarioInputs(name string) (start, goal spatialmath.Pose, bounds spatialmath.Bounds, obstacles [][]r3.Vector, err error) {
	switch name {
	case "straight-shot":
		return spatialmath.NewPose(0, 0, 0), spatialmath.NewPose(5, 0, 0),
			spatialmath.Bounds{MinX: -1, MaxX: 10, MinY: -5, MaxY: 5}, nil, nil

	case "reverse-parking":
		return spatialmath.NewPose(0, 0, 0), spatialmath.NewPose(0, -2, 0),
			spatialmath.Bounds{MinX: -5, MaxX: 5, MinY: -5, MaxY: 5}, nil, nil

	case "corridor":
		leftWall := []r3.Vector{{X: -10, Y: 1}, {X: 4, Y: 1}}
		rightWall := []r3.Vector{{X: 6, Y: 1}, {X: 20, Y: 1}}
		leftWallBelow := []r3.Vector{{X: -10, Y: -1}, {X: 4, Y: -1}}
		rightWallBelow := []r3.Vector{{X: 6, Y: -1}, {X: 20, Y: -1}}
		return spatialmath.NewPose(0, 0, 0), spatialmath.NewPose(10, 0, 0),
			spatialmath.Bounds{MinX: -10, MaxX: 20, MinY: -10, MaxY: 10},
			[][]r3.Vector{leftWall, rightWall, leftWallBelow, rightWallBelow}, nil

	case "infeasible-goal":
		box := []r3.Vector{{X: -2, Y: -2}, {X: 2, Y: -2}, {X: 2, Y: 2}, {X: -2, Y: 2}, {X: -2, Y: -2}}
		return spatialmath.NewPose(0, 0, 0), spatialmath.NewPose(0.2, 0, 0),
			spatialmath.Bounds{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10}, [][]r3.Vector{box}, nil

	default:
		return spatialmath.Pose{}, spatialmath.Pose{}, spatialmath.Bounds{}, nil, fmt.Errorf("unknown scenario %q", name)
	}
}
