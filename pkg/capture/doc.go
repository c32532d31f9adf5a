// Package capture records ETP frames as a JSON Lines transcript.
//
// Each line is one Entry: the direction, the decoded header, the message
// name and the raw frame bytes (base64). Transcripts go to a local file or
// to an S3 object written when the recorder is closed.
//
//	rec, err := capture.Open(ctx, "s3://etp-captures/sessions/")
//	if err != nil {
//	    return err
//	}
//	defer rec.Close()
//
//	s := session.New(t, session.WithRecorder(rec))
package capture
