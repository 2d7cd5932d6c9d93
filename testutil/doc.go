// Package testutil holds shared test fixtures: synthesized audio written
// as WAV files, scratch files and component setup with automatic cleanup.
//
//	func TestSplit(t *testing.T) {
//	    path := testutil.WriteWAV(t, "input.wav", testutil.Tone(2000), audio.Silence(1200, testutil.SampleRate))
//	    ...
//	}
//
//	func TestServer(t *testing.T) {
//	    testutil.T(t).Setup(server.NewComponent(srv))
//	    // stopped when the test ends
//	}
package testutil
