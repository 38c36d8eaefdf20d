package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/joho/godotenv"
	"gonum.org/v1/gonum/mat"

	"github.com/QureshiUsmanAli/RVSS21/calibration"
	"github.com/QureshiUsmanAli/RVSS21/imports"
)

func main() {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
	}

	rigPath := flag.String("rig", os.Getenv("RVSS21_RIG"), "JSON calibration rig file (empty runs the built-in synthetic target)")
	frameYaw := flag.Float64("frame-yaw", 0, "yaw of the new reference frame in the calibration frame, degrees")
	frameOffset := flag.String("frame-offset", "", "origin of the new reference frame in calibration coordinates, as x,y,z")
	flag.Parse()

	var world, image *mat.Dense
	var err error
	if *rigPath != "" {
		world, image, err = imports.ReadRig(*rigPath)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		world, image = syntheticRig()
		fmt.Println("No rig file given, using the built-in synthetic target")
	}

	cameraMatrix, residual, err := calibration.Calibrate(world, image)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Camera matrix C =\n%v\n", calibration.FormatMatrixPrint(cameraMatrix))
	fmt.Printf("RMS reprojection residual = %g px\n\n", residual)

	camera, err := calibration.Decompose(cameraMatrix)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Intrinsics K =\n%v\n", calibration.FormatMatrixPrint(camera.Intrinsics))
	fmt.Printf("Rotation R =\n%v\n", calibration.FormatMatrixPrint(camera.Pose.Rotation))
	fmt.Printf("Translation t =\n%v\n", calibration.FormatMatrixPrint(camera.Pose.Translation))
	fmt.Printf("Camera center =\n%v\n\n", calibration.FormatMatrixPrint(camera.Pose.CameraCenter()))

	if *frameYaw != 0 || *frameOffset != "" {
		offset, err := parseOffset(*frameOffset)
		if err != nil {
			log.Fatal(err)
		}
		frame := calibration.NewPose(calibration.RotationZ(calibration.Degrees2Rad(*frameYaw)), offset)
		camera.SetPose(camera.Pose.Compose(frame))
		fmt.Printf("Pose in the new reference frame:\nR =\n%v\nt =\n%v\n\n",
			calibration.FormatMatrixPrint(camera.Pose.Rotation),
			calibration.FormatMatrixPrint(camera.Pose.Translation))
	}

	homography, err := calibration.GroundHomography(camera.Matrix())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Ground homography H =\n%v\n\n", calibration.FormatMatrixPrint(homography.Matrix()))

	for _, arg := range flag.Args() {
		pixel, err := parsePixel(arg)
		if err != nil {
			log.Fatal(err)
		}
		ground, err := homography.ImageToGround(pixel)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("pixel (%g, %g) -> ground (%g, %g)\n", pixel.X, pixel.Y, ground.X, ground.Y)
	}
}

// syntheticRig projects a known camera over a two-level marker grid so the
// whole pipeline can run without measured data.
func syntheticRig() (*mat.Dense, *mat.Dense) {
	intrinsics := mat.NewDense(3, 3, []float64{
		800, 0, 320,
		0, 800, 240,
		0, 0, 1,
	})

	var rotation mat.Dense
	rotation.Mul(calibration.RotationX(calibration.Degrees2Rad(12)), calibration.RotationZ(calibration.Degrees2Rad(-7)))
	pose := calibration.NewPose(&rotation, mat.NewVecDense(3, []float64{0.1, -0.05, 2.5}))
	camera := calibration.NewCamera(intrinsics, pose)

	world := mat.NewDense(3, 8, nil)
	col := 0
	for _, z := range []float64{0, 0.4} {
		for _, x := range []float64{-0.5, 0.5} {
			for _, y := range []float64{-0.5, 0.5} {
				world.Set(0, col, x)
				world.Set(1, col, y)
				world.Set(2, col, z)
				col++
			}
		}
	}

	image, _, err := camera.Project(world)
	if err != nil {
		log.Fatal(err)
	}
	return world, image
}

func parseOffset(s string) (*mat.VecDense, error) {
	if s == "" {
		return mat.NewVecDense(3, nil), nil
	}
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return nil, fmt.Errorf("frame offset must be x,y,z, have %q", s)
	}
	values := make([]float64, 3)
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return mat.NewVecDense(3, values), nil
}

func parsePixel(s string) (r2.Point, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 2 {
		return r2.Point{}, fmt.Errorf("pixel must be u,v, have %q", s)
	}
	u, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return r2.Point{}, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return r2.Point{}, err
	}
	return r2.Point{X: u, Y: v}, nil
}
